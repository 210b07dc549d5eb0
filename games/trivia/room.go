/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package trivia

import (
	"sync"
	"time"
)

// Phase is the lifecycle stage of a room.
type Phase string

const (
	PhaseLobby      Phase = "lobby"
	PhaseInProgress Phase = "in_progress"
	PhaseEnded      Phase = "ended"
)

func (p Phase) String() string {
	return string(p)
}

// Question is a single multiple choice prompt, as stored in a Bank.
// Clients only ever see a QuestionView.
type Question struct {
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
}

// QuestionView is the client-safe rendition of the active question.
type QuestionView struct {
	Index   int      `json:"index"`
	Total   int      `json:"total"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Player is a room member as seen by clients.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Streak   int    `json:"streak"`
	Answered bool   `json:"answered"`
}

// RoomSnapshot is a point-in-time copy of a room. Nothing in it aliases
// engine state.
type RoomSnapshot struct {
	Code          string        `json:"code"`
	HostPlayerID  string        `json:"host_player_id"`
	Phase         Phase         `json:"phase"`
	QuestionIndex int           `json:"question_index"`
	QuestionCount int           `json:"question_count"`
	Players       []Player      `json:"players"`
	Question      *QuestionView `json:"question,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	LastActive    time.Time     `json:"last_active"`
}

// AnswerResult is returned to the submitting player.
type AnswerResult struct {
	IsCorrect          bool     `json:"is_correct"`
	CorrectOptionIndex int      `json:"correct_option_index"`
	Player             Player   `json:"player"`
	Players            []Player `json:"players"`
	QuestionIndex      int      `json:"question_index"`
	AllAnswered        bool     `json:"all_answered"`
}

// AdvanceResult holds either the next question or, once the last question
// has been passed, the final standings.
type AdvanceResult struct {
	Ended     bool          `json:"ended"`
	Question  *QuestionView `json:"question,omitempty"`
	Standings []Player      `json:"standings,omitempty"`
}

// FinalResult is handed to the Archiver once a game ends.
type FinalResult struct {
	Code      string    `json:"code"`
	Questions int       `json:"questions"`
	Standings []Player  `json:"standings"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

type room struct {
	mu sync.Mutex

	code      string
	hostID    string
	phase     Phase
	questions []Question
	current   int

	// join order
	players []*Player
	byID    map[string]*Player

	createdAt  time.Time
	startedAt  time.Time
	lastActive time.Time

	// set once DiscardRoom or Reap has removed the room from the registry
	discarded bool
}

func newRoom(code string, questions []Question, now time.Time) *room {
	return &room{
		code:       code,
		phase:      PhaseLobby,
		questions:  questions,
		byID:       make(map[string]*Player),
		createdAt:  now,
		lastActive: now,
	}
}

func (r *room) addPlayerLocked(id, name string) *Player {
	p := &Player{
		ID:   id,
		Name: name,
	}
	r.players = append(r.players, p)
	r.byID[id] = p

	return p
}

func (r *room) playersLocked() []Player {
	out := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}

	return out
}

func (r *room) allAnsweredLocked() bool {
	for _, p := range r.players {
		if !p.Answered {
			return false
		}
	}

	return len(r.players) > 0
}

func (r *room) questionViewLocked() *QuestionView {
	if r.phase != PhaseInProgress || r.current >= len(r.questions) {
		return nil
	}

	q := r.questions[r.current]

	options := make([]string, len(q.Options))
	copy(options, q.Options)

	return &QuestionView{
		Index:   r.current,
		Total:   len(r.questions),
		Text:    q.Text,
		Options: options,
	}
}

func (r *room) snapshotLocked() RoomSnapshot {
	return RoomSnapshot{
		Code:          r.code,
		HostPlayerID:  r.hostID,
		Phase:         r.phase,
		QuestionIndex: r.current,
		QuestionCount: len(r.questions),
		Players:       r.playersLocked(),
		Question:      r.questionViewLocked(),
		CreatedAt:     r.createdAt,
		LastActive:    r.lastActive,
	}
}
