package trivia

import "context"

const (
	TypePlayerJoined     = "player_joined"
	TypeGameStarted      = "game_started"
	TypeAnswerScored     = "answer_scored"
	TypeQuestionAdvanced = "question_advanced"
	TypeGameEnded        = "game_ended"
)

// Event is emitted once per successful state change. Each concrete event
// carries its own "type" field so it can be written to the wire as-is.
type Event interface {
	Room() string
	EventType() string
}

// Notifier receives events while the room lock is held, so implementations
// must not block.
type Notifier interface {
	Notify(Event)
}

type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// Archiver is called once per finished game, after the room lock has been
// released.
type Archiver interface {
	Archive(ctx context.Context, result FinalResult) error
}

type PlayerJoined struct {
	Type     string   `json:"type"` // "player_joined"
	RoomCode string   `json:"room_code"`
	PlayerID string   `json:"player_id"`
	Players  []Player `json:"players"`
}

type GameStarted struct {
	Type     string       `json:"type"` // "game_started"
	RoomCode string       `json:"room_code"`
	Question QuestionView `json:"question"`
}

type AnswerScored struct {
	Type          string   `json:"type"` // "answer_scored"
	RoomCode      string   `json:"room_code"`
	PlayerID      string   `json:"player_id"`
	QuestionIndex int      `json:"question_index"`
	IsCorrect     bool     `json:"is_correct"`
	AllAnswered   bool     `json:"all_answered"`
	Players       []Player `json:"players"`
}

type QuestionAdvanced struct {
	Type     string       `json:"type"` // "question_advanced"
	RoomCode string       `json:"room_code"`
	Question QuestionView `json:"question"`
}

type GameEnded struct {
	Type     string   `json:"type"` // "game_ended"
	RoomCode string   `json:"room_code"`
	Players  []Player `json:"players"` // final standings
}

func (e PlayerJoined) Room() string     { return e.RoomCode }
func (e GameStarted) Room() string      { return e.RoomCode }
func (e AnswerScored) Room() string     { return e.RoomCode }
func (e QuestionAdvanced) Room() string { return e.RoomCode }
func (e GameEnded) Room() string        { return e.RoomCode }

func (PlayerJoined) EventType() string     { return TypePlayerJoined }
func (GameStarted) EventType() string      { return TypeGameStarted }
func (AnswerScored) EventType() string     { return TypeAnswerScored }
func (QuestionAdvanced) EventType() string { return TypeQuestionAdvanced }
func (GameEnded) EventType() string        { return TypeGameEnded }
