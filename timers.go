package main

import (
	"errors"
	"sync"
	"time"

	"github.com/Seednode/triviabox/games/trivia"
)

// questionTimers drives the clock the engine does not have: a timeout per
// question, which submits TimeoutOption for everyone still thinking, and an
// optional automatic advance once every player has answered.
type questionTimers struct {
	g *Gateway

	mu       sync.Mutex
	timeouts map[string]*time.Timer
	advances map[string]*time.Timer
}

func newQuestionTimers(g *Gateway) *questionTimers {
	return &questionTimers{
		g:        g,
		timeouts: make(map[string]*time.Timer),
		advances: make(map[string]*time.Timer),
	}
}

// observe is called with the room lock held, so it only schedules.
func (t *questionTimers) observe(e trivia.Event) {
	switch ev := e.(type) {
	case trivia.GameStarted:
		t.armTimeout(ev.RoomCode, ev.Question.Index)
	case trivia.QuestionAdvanced:
		t.cancel(t.advances, ev.RoomCode)
		t.armTimeout(ev.RoomCode, ev.Question.Index)
	case trivia.AnswerScored:
		if ev.AllAnswered {
			t.cancel(t.timeouts, ev.RoomCode)
			t.armAdvance(ev.RoomCode, ev.QuestionIndex)
		}
	case trivia.GameEnded:
		t.stop(ev.RoomCode)
	}
}

func (t *questionTimers) armTimeout(code string, index int) {
	d := t.g.cfg.questionTimeout
	if d <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if old, ok := t.timeouts[code]; ok {
		old.Stop()
	}

	t.timeouts[code] = time.AfterFunc(d, func() {
		t.expire(code, index)
	})
}

func (t *questionTimers) armAdvance(code string, index int) {
	d := t.g.cfg.autoAdvance
	if d <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if old, ok := t.advances[code]; ok {
		old.Stop()
	}

	t.advances[code] = time.AfterFunc(d, func() {
		t.advance(code, index)
	})
}

func (t *questionTimers) cancel(timers map[string]*time.Timer, code string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := timers[code]; ok {
		timer.Stop()
		delete(timers, code)
	}
}

// stop cancels everything pending for a room.
func (t *questionTimers) stop(code string) {
	t.cancel(t.timeouts, code)
	t.cancel(t.advances, code)
}

func (t *questionTimers) pending(code string) (timeout, advance bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, timeout = t.timeouts[code]
	_, advance = t.advances[code]

	return timeout, advance
}

func (t *questionTimers) expire(code string, index int) {
	snap, err := t.g.engine.GetRoom(code)
	if err != nil || snap.Phase != trivia.PhaseInProgress || snap.QuestionIndex != index {
		return
	}

	for _, p := range snap.Players {
		if p.Answered {
			continue
		}

		_, err := t.g.engine.SubmitAnswerAt(code, p.ID, index, trivia.TimeoutOption)
		switch {
		case err == nil:
			logf(t.g.cfg, "GAMES: %q ran out of time on question %d in %s", p.Name, index, code)
		case errors.Is(err, trivia.ErrDuplicateAnswer):
			// answered while we were looping
		case errors.Is(err, trivia.ErrStaleQuestion), errors.Is(err, trivia.ErrInvalidPhase), errors.Is(err, trivia.ErrRoomNotFound):
			return
		default:
			t.g.cfg.logger.Error("question timeout failed", "room", code, "player", p.ID, "error", err)
		}
	}
}

func (t *questionTimers) advance(code string, index int) {
	snap, err := t.g.engine.GetRoom(code)
	if err != nil {
		return
	}

	// acts on the host's behalf, but only if nobody has moved on already
	_, err = t.g.engine.AdvanceQuestionFrom(t.g.ctx, code, snap.HostPlayerID, index)
	if err != nil && !errors.Is(err, trivia.ErrStaleQuestion) && !errors.Is(err, trivia.ErrInvalidPhase) && !errors.Is(err, trivia.ErrRoomNotFound) {
		t.g.cfg.logger.Error("auto advance failed", "room", code, "error", err)
	}
}

// reaperLoop periodically discards rooms that have been idle longer than
// the session timeout.
func (g *Gateway) reaperLoop() {
	timeout := g.cfg.sessionTimeout
	if timeout <= 0 {
		return
	}

	ticker := time.NewTicker(timeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-g.ctx.Done():
			return
		case now := <-ticker.C:
			g.reap(now.Add(-timeout))
		}
	}
}

func (g *Gateway) reap(cutoff time.Time) []string {
	reaped := g.engine.Reap(cutoff)

	for _, code := range reaped {
		g.timers.stop(code)
		g.hub.closeRoom(code, "The room was closed after a period of inactivity.")
	}

	return reaped
}
