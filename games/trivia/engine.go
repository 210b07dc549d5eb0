/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package trivia implements the authoritative state of multiplayer trivia
// rooms: lifecycle, roster, question progression and scoring.
//
// Every room is guarded by its own mutex, so commands against one room
// serialize while different rooms proceed independently. The engine owns no
// timers and performs no I/O under a room lock; question timeouts and room
// expiry are driven from outside through SubmitAnswer(-1) and Reap.
package trivia

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	// points awarded for a correct answer
	CorrectAnswerReward = 100

	// option index submitted when a player runs out of time
	TimeoutOption = -1

	anyQuestion = -1
)

type Options struct {
	Bank     Bank
	Notifier Notifier
	Archiver Archiver
	Logger   *slog.Logger

	// MinPlayers is the roster size required by StartGame. Defaults to 1.
	MinPlayers int

	Now     func() time.Time
	NewCode func() (string, error)
}

type Engine struct {
	mu    sync.RWMutex
	rooms map[string]*room

	bank       Bank
	notifier   Notifier
	archiver   Archiver
	logger     *slog.Logger
	minPlayers int
	now        func() time.Time
	newCode    func() (string, error)
}

func New(opts Options) *Engine {
	e := &Engine{
		rooms:      make(map[string]*room),
		bank:       opts.Bank,
		notifier:   opts.Notifier,
		archiver:   opts.Archiver,
		logger:     opts.Logger,
		minPlayers: opts.MinPlayers,
		now:        opts.Now,
		newCode:    opts.NewCode,
	}

	if e.bank == nil {
		e.bank = DefaultBank()
	}
	if e.notifier == nil {
		e.notifier = NotifierFunc(func(Event) {})
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.minPlayers < 1 {
		e.minPlayers = 1
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newCode == nil {
		e.newCode = RandomCode
	}

	return e
}

// Rooms returns the number of active rooms.
func (e *Engine) Rooms() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.rooms)
}

// lockRoom returns the room with its mutex held.
func (e *Engine) lockRoom(code string) (*room, error) {
	code = NormalizeCode(code)

	e.mu.RLock()
	r, ok := e.rooms[code]
	e.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("room %q: %w", code, ErrRoomNotFound)
	}

	r.mu.Lock()

	// lost a race with DiscardRoom or Reap
	if r.discarded {
		r.mu.Unlock()

		return nil, fmt.Errorf("room %q: %w", code, ErrRoomNotFound)
	}

	return r, nil
}

// CreateRoom opens a new room in the lobby phase with the host as its first
// player.
func (e *Engine) CreateRoom(hostID, hostName string, questionCount int) (string, RoomSnapshot, error) {
	hostID, hostName = strings.TrimSpace(hostID), strings.TrimSpace(hostName)
	if hostID == "" || hostName == "" {
		return "", RoomSnapshot{}, ErrInvalidPlayer
	}

	if questionCount < 1 {
		return "", RoomSnapshot{}, fmt.Errorf("room needs at least one question: %w", ErrInsufficientQuestions)
	}

	questions, err := e.bank.Draw(questionCount)
	if err != nil {
		if errors.Is(err, ErrInsufficientQuestions) {
			return "", RoomSnapshot{}, err
		}

		return "", RoomSnapshot{}, fmt.Errorf("draw questions: %w", err)
	}
	if len(questions) != questionCount {
		return "", RoomSnapshot{}, fmt.Errorf("bank returned %d of %d: %w", len(questions), questionCount, ErrInsufficientQuestions)
	}

	now := e.now()

	e.mu.Lock()

	code, err := e.freeCodeLocked()
	if err != nil {
		e.mu.Unlock()

		return "", RoomSnapshot{}, err
	}

	r := newRoom(code, questions, now)
	r.hostID = hostID

	// held until the host's join event is out, so no other join can be
	// announced ahead of it
	r.mu.Lock()
	defer r.mu.Unlock()

	e.rooms[code] = r
	e.mu.Unlock()

	r.addPlayerLocked(hostID, hostName)

	e.logger.Info("room created", "room", code, "host", hostID, "questions", len(questions))

	snap := r.snapshotLocked()

	e.notifier.Notify(PlayerJoined{
		Type:     TypePlayerJoined,
		RoomCode: code,
		PlayerID: hostID,
		Players:  snap.Players,
	})

	return code, snap, nil
}

func (e *Engine) freeCodeLocked() (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := e.newCode()
		if err != nil {
			return "", fmt.Errorf("generate room code: %w", err)
		}

		code = NormalizeCode(code)
		if _, exists := e.rooms[code]; !exists && code != "" {
			return code, nil
		}
	}

	return "", ErrRoomCodesExhausted
}

// JoinRoom adds a player to a room still in the lobby. Joining again with
// a known id is a no-op that keeps the player's score and streak.
func (e *Engine) JoinRoom(code, playerID, name string) (RoomSnapshot, error) {
	playerID, name = strings.TrimSpace(playerID), strings.TrimSpace(name)
	if playerID == "" || name == "" {
		return RoomSnapshot{}, ErrInvalidPlayer
	}

	r, err := e.lockRoom(code)
	if err != nil {
		return RoomSnapshot{}, err
	}
	defer r.mu.Unlock()

	if r.phase != PhaseLobby {
		return RoomSnapshot{}, fmt.Errorf("room %q: %w", r.code, ErrGameAlreadyStarted)
	}

	r.lastActive = e.now()

	if _, ok := r.byID[playerID]; ok {
		e.logger.Debug("player rejoined", "room", r.code, "player", playerID)

		return r.snapshotLocked(), nil
	}

	r.addPlayerLocked(playerID, name)

	e.logger.Info("player joined", "room", r.code, "player", playerID, "players", len(r.players))

	snap := r.snapshotLocked()

	e.notifier.Notify(PlayerJoined{
		Type:     TypePlayerJoined,
		RoomCode: r.code,
		PlayerID: playerID,
		Players:  snap.Players,
	})

	return snap, nil
}

// StartGame moves a lobby into play and returns the first question.
func (e *Engine) StartGame(code, requesterID string) (QuestionView, error) {
	r, err := e.lockRoom(code)
	if err != nil {
		return QuestionView{}, err
	}
	defer r.mu.Unlock()

	if requesterID != r.hostID {
		return QuestionView{}, fmt.Errorf("room %q: %w", r.code, ErrNotHost)
	}
	if r.phase != PhaseLobby {
		return QuestionView{}, fmt.Errorf("room %q is %s: %w", r.code, r.phase, ErrInvalidPhase)
	}
	if len(r.players) < e.minPlayers {
		return QuestionView{}, fmt.Errorf("room %q has %d of %d players: %w", r.code, len(r.players), e.minPlayers, ErrInsufficientPlayers)
	}

	now := e.now()

	r.phase = PhaseInProgress
	r.current = 0
	r.startedAt = now
	r.lastActive = now

	view := *r.questionViewLocked()

	e.logger.Info("game started", "room", r.code, "players", len(r.players))

	e.notifier.Notify(GameStarted{
		Type:     TypeGameStarted,
		RoomCode: r.code,
		Question: view,
	})

	return view, nil
}

// SubmitAnswer scores one answer per player per question. Any option other
// than the correct one, including TimeoutOption, breaks the streak.
func (e *Engine) SubmitAnswer(code, playerID string, optionIndex int) (AnswerResult, error) {
	return e.submit(code, playerID, anyQuestion, optionIndex)
}

// SubmitAnswerAt is SubmitAnswer for a specific question. It fails with
// ErrStaleQuestion once the room has moved past questionIndex, so answers
// and timeouts that raced an advance are not scored against the next one.
func (e *Engine) SubmitAnswerAt(code, playerID string, questionIndex, optionIndex int) (AnswerResult, error) {
	if questionIndex < 0 {
		return AnswerResult{}, fmt.Errorf("question %d: %w", questionIndex, ErrStaleQuestion)
	}

	return e.submit(code, playerID, questionIndex, optionIndex)
}

func (e *Engine) submit(code, playerID string, questionIndex, optionIndex int) (AnswerResult, error) {
	r, err := e.lockRoom(code)
	if err != nil {
		return AnswerResult{}, err
	}
	defer r.mu.Unlock()

	if r.phase != PhaseInProgress {
		return AnswerResult{}, fmt.Errorf("room %q is %s: %w", r.code, r.phase, ErrInvalidPhase)
	}
	if questionIndex != anyQuestion && questionIndex != r.current {
		return AnswerResult{}, fmt.Errorf("room %q is on question %d, not %d: %w", r.code, r.current, questionIndex, ErrStaleQuestion)
	}

	p, ok := r.byID[playerID]
	if !ok {
		return AnswerResult{}, fmt.Errorf("room %q, player %q: %w", r.code, playerID, ErrUnknownPlayer)
	}
	if p.Answered {
		return AnswerResult{}, fmt.Errorf("room %q, player %q, question %d: %w", r.code, playerID, r.current, ErrDuplicateAnswer)
	}

	q := r.questions[r.current]
	correct := optionIndex == q.CorrectOptionIndex

	p.Answered = true
	if correct {
		p.Score += CorrectAnswerReward
		p.Streak++
	} else {
		p.Streak = 0
	}

	r.lastActive = e.now()

	result := AnswerResult{
		IsCorrect:          correct,
		CorrectOptionIndex: q.CorrectOptionIndex,
		Player:             *p,
		Players:            r.playersLocked(),
		QuestionIndex:      r.current,
		AllAnswered:        r.allAnsweredLocked(),
	}

	e.logger.Debug("answer scored", "room", r.code, "player", playerID, "question", r.current, "correct", correct)

	e.notifier.Notify(AnswerScored{
		Type:          TypeAnswerScored,
		RoomCode:      r.code,
		PlayerID:      playerID,
		QuestionIndex: r.current,
		IsCorrect:     correct,
		AllAnswered:   result.AllAnswered,
		Players:       result.Players,
	})

	return result, nil
}

// AdvanceQuestion moves to the next question, or ends the game after the
// last one. The Archiver, if any, runs under ctx once the room is unlocked.
func (e *Engine) AdvanceQuestion(ctx context.Context, code, requesterID string) (AdvanceResult, error) {
	return e.advanceAndArchive(ctx, code, requesterID, anyQuestion)
}

// AdvanceQuestionFrom is AdvanceQuestion that only fires while the room is
// still on fromIndex, failing with ErrStaleQuestion otherwise.
func (e *Engine) AdvanceQuestionFrom(ctx context.Context, code, requesterID string, fromIndex int) (AdvanceResult, error) {
	if fromIndex < 0 {
		return AdvanceResult{}, fmt.Errorf("question %d: %w", fromIndex, ErrStaleQuestion)
	}

	return e.advanceAndArchive(ctx, code, requesterID, fromIndex)
}

func (e *Engine) advanceAndArchive(ctx context.Context, code, requesterID string, fromIndex int) (AdvanceResult, error) {
	result, final, err := e.advance(code, requesterID, fromIndex)
	if err != nil {
		return AdvanceResult{}, err
	}

	if final != nil && e.archiver != nil {
		if err := e.archiver.Archive(ctx, *final); err != nil {
			e.logger.Error("archive failed", "room", final.Code, "error", err)
		}
	}

	return result, nil
}

func (e *Engine) advance(code, requesterID string, fromIndex int) (AdvanceResult, *FinalResult, error) {
	r, err := e.lockRoom(code)
	if err != nil {
		return AdvanceResult{}, nil, err
	}
	defer r.mu.Unlock()

	if requesterID != r.hostID {
		return AdvanceResult{}, nil, fmt.Errorf("room %q: %w", r.code, ErrNotHost)
	}
	if r.phase != PhaseInProgress {
		return AdvanceResult{}, nil, fmt.Errorf("room %q is %s: %w", r.code, r.phase, ErrInvalidPhase)
	}
	if fromIndex != anyQuestion && fromIndex != r.current {
		return AdvanceResult{}, nil, fmt.Errorf("room %q is on question %d, not %d: %w", r.code, r.current, fromIndex, ErrStaleQuestion)
	}

	now := e.now()

	r.current++
	r.lastActive = now
	for _, p := range r.players {
		p.Answered = false
	}

	if r.current < len(r.questions) {
		view := *r.questionViewLocked()

		e.logger.Debug("question advanced", "room", r.code, "question", r.current)

		e.notifier.Notify(QuestionAdvanced{
			Type:     TypeQuestionAdvanced,
			RoomCode: r.code,
			Question: view,
		})

		return AdvanceResult{Question: &view}, nil, nil
	}

	r.phase = PhaseEnded
	standings := Standings(r.playersLocked())

	e.logger.Info("game ended", "room", r.code, "players", len(standings))

	e.notifier.Notify(GameEnded{
		Type:     TypeGameEnded,
		RoomCode: r.code,
		Players:  standings,
	})

	final := &FinalResult{
		Code:      r.code,
		Questions: len(r.questions),
		Standings: Standings(standings),
		StartedAt: r.startedAt,
		EndedAt:   now,
	}

	return AdvanceResult{Ended: true, Standings: standings}, final, nil
}

// GetRoom returns a snapshot for clients that need to resync.
func (e *Engine) GetRoom(code string) (RoomSnapshot, error) {
	r, err := e.lockRoom(code)
	if err != nil {
		return RoomSnapshot{}, err
	}
	defer r.mu.Unlock()

	return r.snapshotLocked(), nil
}

// DiscardRoom tears a room down in any phase. Its code is unknown to every
// later call.
func (e *Engine) DiscardRoom(code string) error {
	code = NormalizeCode(code)

	e.mu.Lock()
	r, ok := e.rooms[code]
	if ok {
		delete(e.rooms, code)
	}
	e.mu.Unlock()

	if !ok {
		return fmt.Errorf("room %q: %w", code, ErrRoomNotFound)
	}

	r.mu.Lock()
	r.discarded = true
	r.mu.Unlock()

	e.logger.Info("room discarded", "room", code)

	return nil
}

// Reap discards every room idle since before cutoff and returns their codes.
func (e *Engine) Reap(cutoff time.Time) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var reaped []string

	for code, r := range e.rooms {
		r.mu.Lock()
		if r.lastActive.Before(cutoff) {
			r.discarded = true
			delete(e.rooms, code)
			reaped = append(reaped, code)
		}
		r.mu.Unlock()
	}

	for _, code := range reaped {
		e.logger.Info("room reaped", "room", code)
	}

	return reaped
}
