package trivia

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Notify(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType())
	}

	return out
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) == 0 {
		return nil
	}

	return r.events[len(r.events)-1]
}

type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Archive(ctx context.Context, result FinalResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

var testQuestions = []Question{
	{
		Text:               "What is the capital of France?",
		Options:            []string{"London", "Berlin", "Paris", "Madrid"},
		CorrectOptionIndex: 2,
	},
	{
		Text:               "Which planet is known as the Red Planet?",
		Options:            []string{"Venus", "Mars", "Jupiter", "Saturn"},
		CorrectOptionIndex: 1,
	},
	{
		Text:               "Quanto é 5 + 3?",
		Options:            []string{"6", "7", "8", "9"},
		CorrectOptionIndex: 2,
	},
}

// orderedBank hands out its questions in order, so tests know which
// question is current.
type orderedBank []Question

func (b orderedBank) Draw(count int) ([]Question, error) {
	if count < 1 || count > len(b) {
		return nil, ErrInsufficientQuestions
	}

	out := make([]Question, count)
	copy(out, b[:count])

	return out, nil
}

func sequentialCodes(codes ...string) func() (string, error) {
	var mu sync.Mutex
	i := 0

	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()

		if i >= len(codes) {
			return "", errors.New("out of codes")
		}
		c := codes[i]
		i++

		return c, nil
	}
}

func newTestEngine(t *testing.T, opts Options) (*Engine, *recorder) {
	t.Helper()

	rec := &recorder{}
	if opts.Bank == nil {
		opts.Bank = orderedBank(testQuestions)
	}
	if opts.Notifier == nil {
		opts.Notifier = rec
	}

	return New(opts), rec
}

func TestCreateRoom(t *testing.T) {
	e, rec := newTestEngine(t, Options{NewCode: sequentialCodes("ABCD")})

	code, snap, err := e.CreateRoom("host", "Ana", 2)
	require.NoError(t, err)

	assert.Equal(t, "ABCD", code)
	assert.Equal(t, "ABCD", snap.Code)
	assert.Equal(t, "host", snap.HostPlayerID)
	assert.Equal(t, PhaseLobby, snap.Phase)
	assert.Equal(t, 0, snap.QuestionIndex)
	assert.Equal(t, 2, snap.QuestionCount)
	assert.Nil(t, snap.Question)
	assert.Equal(t, []Player{{ID: "host", Name: "Ana"}}, snap.Players)
	assert.Equal(t, 1, e.Rooms())

	assert.Equal(t, []string{TypePlayerJoined}, rec.types())
}

func TestCreateRoomRetriesCollidingCodes(t *testing.T) {
	e, _ := newTestEngine(t, Options{NewCode: sequentialCodes("AAAA", "AAAA", "bbbb")})

	first, _, err := e.CreateRoom("h1", "One", 1)
	require.NoError(t, err)

	second, _, err := e.CreateRoom("h2", "Two", 1)
	require.NoError(t, err)

	assert.Equal(t, "AAAA", first)
	assert.Equal(t, "BBBB", second)
}

func TestCreateRoomCodesExhausted(t *testing.T) {
	e, _ := newTestEngine(t, Options{NewCode: func() (string, error) { return "SAME", nil }})

	_, _, err := e.CreateRoom("h1", "One", 1)
	require.NoError(t, err)

	_, _, err = e.CreateRoom("h2", "Two", 1)
	assert.ErrorIs(t, err, ErrRoomCodesExhausted)
	assert.Equal(t, 1, e.Rooms())
}

func TestCreateRoomValidation(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		host  string
		count int
		want  error
	}{
		{"empty id", "", "Ana", 1, ErrInvalidPlayer},
		{"blank name", "host", "   ", 1, ErrInvalidPlayer},
		{"zero questions", "host", "Ana", 0, ErrInsufficientQuestions},
		{"bank too small", "host", "Ana", len(testQuestions) + 1, ErrInsufficientQuestions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newTestEngine(t, Options{})

			_, _, err := e.CreateRoom(tt.id, tt.host, tt.count)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, e.Rooms())
			assert.Empty(t, rec.types())
		})
	}
}

func TestJoinRoomPreservesOrder(t *testing.T) {
	e, rec := newTestEngine(t, Options{})

	code, _, err := e.CreateRoom("host", "Host", 1)
	require.NoError(t, err)

	names := []string{"Bia", "Caio", "Duda", "Enzo"}
	for i, n := range names {
		_, err := e.JoinRoom(code, fmt.Sprintf("p%d", i), n)
		require.NoError(t, err)
	}

	snap, err := e.GetRoom(code)
	require.NoError(t, err)

	require.Len(t, snap.Players, len(names)+1)
	assert.Equal(t, "Host", snap.Players[0].Name)
	for i, n := range names {
		p := snap.Players[i+1]
		assert.Equal(t, n, p.Name)
		assert.Zero(t, p.Score)
		assert.Zero(t, p.Streak)
	}

	assert.Len(t, rec.types(), len(names)+1)

	joined, ok := rec.last().(PlayerJoined)
	require.True(t, ok)
	assert.Equal(t, "p3", joined.PlayerID)
	assert.Len(t, joined.Players, len(names)+1)
}

func TestJoinRoomCodeIsCaseInsensitive(t *testing.T) {
	e, _ := newTestEngine(t, Options{NewCode: sequentialCodes("WXYZ")})

	_, _, err := e.CreateRoom("host", "Host", 1)
	require.NoError(t, err)

	snap, err := e.JoinRoom(" wxyz ", "p1", "Bia")
	require.NoError(t, err)
	assert.Len(t, snap.Players, 2)
}

func TestJoinRoomRejoinIsIdempotent(t *testing.T) {
	e, rec := newTestEngine(t, Options{})

	code, _, err := e.CreateRoom("host", "Host", 1)
	require.NoError(t, err)

	_, err = e.JoinRoom(code, "p1", "Bia")
	require.NoError(t, err)

	snap, err := e.JoinRoom(code, "p1", "Someone Else")
	require.NoError(t, err)

	require.Len(t, snap.Players, 2)
	assert.Equal(t, "Bia", snap.Players[1].Name)
	assert.Equal(t, []string{TypePlayerJoined, TypePlayerJoined}, rec.types())
}

func TestJoinRoomUnknownCode(t *testing.T) {
	e, rec := newTestEngine(t, Options{})

	_, err := e.JoinRoom("NOPE", "p1", "Bia")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = e.GetRoom("NOPE")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.Zero(t, e.Rooms())
	assert.Empty(t, rec.types())
}

func TestJoinRoomAfterStart(t *testing.T) {
	e, _ := newTestEngine(t, Options{})

	code, _, err := e.CreateRoom("host", "Host", 1)
	require.NoError(t, err)

	_, err = e.StartGame(code, "host")
	require.NoError(t, err)

	_, err = e.JoinRoom(code, "late", "Late")
	assert.ErrorIs(t, err, ErrGameAlreadyStarted)

	snap, err := e.GetRoom(code)
	require.NoError(t, err)
	assert.Len(t, snap.Players, 1)
}

func TestStartGame(t *testing.T) {
	e, rec := newTestEngine(t, Options{})

	code, _, err := e.CreateRoom("host", "Host", 2)
	require.NoError(t, err)

	_, err = e.StartGame(code, "someone")
	assert.ErrorIs(t, err, ErrNotHost)

	view, err := e.StartGame(code, "host")
	require.NoError(t, err)

	assert.Equal(t, QuestionView{
		Index:   0,
		Total:   2,
		Text:    testQuestions[0].Text,
		Options: testQuestions[0].Options,
	}, view)

	started, ok := rec.last().(GameStarted)
	require.True(t, ok)
	assert.Equal(t, view, started.Question)

	_, err = e.StartGame(code, "host")
	assert.ErrorIs(t, err, ErrInvalidPhase)

	snap, err := e.GetRoom(code)
	require.NoError(t, err)
	assert.Equal(t, PhaseInProgress, snap.Phase)
	require.NotNil(t, snap.Question)
	assert.Equal(t, 0, snap.Question.Index)
}

func TestStartGameMinPlayers(t *testing.T) {
	e, _ := newTestEngine(t, Options{MinPlayers: 2})

	code, _, err := e.CreateRoom("host", "Host", 1)
	require.NoError(t, err)

	_, err = e.StartGame(code, "host")
	assert.ErrorIs(t, err, ErrInsufficientPlayers)

	snap, err := e.GetRoom(code)
	require.NoError(t, err)
	assert.Equal(t, PhaseLobby, snap.Phase)

	_, err = e.JoinRoom(code, "p1", "Bia")
	require.NoError(t, err)

	_, err = e.StartGame(code, "host")
	assert.NoError(t, err)
}

func TestSubmitAnswerScoring(t *testing.T) {
	e, rec := newTestEngine(t, Options{})

	code, _, err := e.CreateRoom("host", "Host", 3)
	require.NoError(t, err)
	_, err = e.JoinRoom(code, "p1", "Bia")
	require.NoError(t, err)
	_, err = e.StartGame(code, "host")
	require.NoError(t, err)

	ctx := context.Background()

	// correct, correct, timeout
	answers := []struct {
		option  int
		correct bool
		score   int
		streak  int
	}{
		{2, true, 100, 1},
		{1, true, 200, 2},
		{TimeoutOption, false, 200, 0},
	}

	for i, a := range answers {
		res, err := e.SubmitAnswer(code, "p1", a.option)
		require.NoError(t, err, "question %d", i)

		assert.Equal(t, a.correct, res.IsCorrect)
		assert.Equal(t, testQuestions[i].CorrectOptionIndex, res.CorrectOptionIndex)
		assert.Equal(t, a.score, res.Player.Score)
		assert.Equal(t, a.streak, res.Player.Streak)
		assert.True(t, res.Player.Answered)
		assert.Equal(t, i, res.QuestionIndex)
		assert.False(t, res.AllAnswered)
		assert.Len(t, res.Players, 2)

		scored, ok := rec.last().(AnswerScored)
		require.True(t, ok)
		assert.Equal(t, "p1", scored.PlayerID)
		assert.Equal(t, a.correct, scored.IsCorrect)

		if i < len(answers)-1 {
			_, err = e.AdvanceQuestion(ctx, code, "host")
			require.NoError(t, err)
		}
	}
}

func TestSubmitAnswerOutOfRangeIsIncorrect(t *testing.T) {
	e, _ := newTestEngine(t, Options{})

	code, _, err := e.CreateRoom("host", "Host", 1)
	require.NoError(t, err)
	_, err = e.StartGame(code, "host")
	require.NoError(t, err)

	res, err := e.SubmitAnswer(code, "host", 99)
	require.NoError(t, err)
	assert.False(t, res.IsCorrect)
	assert.Zero(t, res.Player.Score)
	assert.True(t, res.AllAnswered)
}

func TestSubmitAnswerDuplicate(t *testing.T) {
	e, rec := newTestEngine(t, Options{})

	code, _, err := e.CreateRoom("host", "Host", 1)
	require.NoError(t, err)
	_, err = e.StartGame(code, "host")
	require.NoError(t, err)

	_, err = e.SubmitAnswer(code, "host", 2)
	require.NoError(t, err)

	events := len(rec.types())

	_, err = e.SubmitAnswer(code, "host", 2)
	assert.ErrorIs(t, err, ErrDuplicateAnswer)

	snap, err := e.GetRoom(code)
	require.NoError(t, err)
	assert.Equal(t, 100, snap.Players[0].Score)
	assert.Equal(t, 1, snap.Players[0].Streak)
	assert.Len(t, rec.types(), events)
}

func TestSubmitAnswerRejections(t *testing.T) {
	e, _ := newTestEngine(t, Options{})

	code, _, err := e.CreateRoom("host", "Host", 1)
	require.NoError(t, err)

	_, err = e.SubmitAnswer(code, "host", 2)
	assert.ErrorIs(t, err, ErrInvalidPhase)

	_, err = e.StartGame(code, "host")
	require.NoError(t, err)

	_, err = e.SubmitAnswer(code, "ghost", 2)
	assert.ErrorIs(t, err, ErrUnknownPlayer)

	_, err = e.SubmitAnswer("ZZZZ", "host", 2)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestSubmitAnswerConcurrentDuplicates(t *testing.T) {
	e, _ := newTestEngine(t, Options{})

	code, _, err := e.CreateRoom("host", "Host", 1)
	require.NoError(t, err)
	_, err = e.StartGame(code, "host")
	require.NoError(t, err)

	const attempts = 32

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dupes     int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := e.SubmitAnswer(code, "host", 2)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrDuplicateAnswer):
				dupes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, dupes)

	snap, err := e.GetRoom(code)
	require.NoError(t, err)
	assert.Equal(t, CorrectAnswerReward, snap.Players[0].Score)
}

func TestAdvanceQuestionEndsGame(t *testing.T) {
	e, rec := newTestEngine(t, Options{})
	ctx := context.Background()

	code, _, err := e.CreateRoom("host", "Host", 3)
	require.NoError(t, err)

	_, err = e.AdvanceQuestion(ctx, code, "host")
	assert.ErrorIs(t, err, ErrInvalidPhase)

	_, err = e.StartGame(code, "host")
	require.NoError(t, err)

	_, err = e.AdvanceQuestion(ctx, code, "intruder")
	assert.ErrorIs(t, err, ErrNotHost)

	for i := 1; i < 3; i++ {
		res, err := e.AdvanceQuestion(ctx, code, "host")
		require.NoError(t, err)
		assert.False(t, res.Ended)
		require.NotNil(t, res.Question)
		assert.Equal(t, i, res.Question.Index)
		assert.Equal(t, testQuestions[i].Text, res.Question.Text)
	}

	res, err := e.AdvanceQuestion(ctx, code, "host")
	require.NoError(t, err)
	assert.True(t, res.Ended)
	assert.Nil(t, res.Question)

	_, err = e.AdvanceQuestion(ctx, code, "host")
	assert.ErrorIs(t, err, ErrInvalidPhase)

	snap, err := e.GetRoom(code)
	require.NoError(t, err)
	assert.Equal(t, PhaseEnded, snap.Phase)
	assert.Equal(t, 3, snap.QuestionIndex)
	assert.Nil(t, snap.Question)

	assert.Equal(t, []string{
		TypePlayerJoined,
		TypeGameStarted,
		TypeQuestionAdvanced,
		TypeQuestionAdvanced,
		TypeGameEnded,
	}, rec.types())
}

func TestAdvanceQuestionResetsAnswered(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	ctx := context.Background()

	code, _, err := e.CreateRoom("host", "Host", 2)
	require.NoError(t, err)
	_, err = e.StartGame(code, "host")
	require.NoError(t, err)

	_, err = e.SubmitAnswer(code, "host", 0)
	require.NoError(t, err)

	_, err = e.AdvanceQuestion(ctx, code, "host")
	require.NoError(t, err)

	snap, err := e.GetRoom(code)
	require.NoError(t, err)
	assert.False(t, snap.Players[0].Answered)

	_, err = e.SubmitAnswer(code, "host", 1)
	assert.NoError(t, err)
}

func TestEndedRoomRejectsCommands(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	ctx := context.Background()

	code, _, err := e.CreateRoom("host", "Host", 1)
	require.NoError(t, err)
	_, err = e.StartGame(code, "host")
	require.NoError(t, err)
	_, err = e.AdvanceQuestion(ctx, code, "host")
	require.NoError(t, err)

	_, err = e.JoinRoom(code, "p1", "Bia")
	assert.ErrorIs(t, err, ErrGameAlreadyStarted)

	_, err = e.StartGame(code, "host")
	assert.ErrorIs(t, err, ErrInvalidPhase)

	_, err = e.SubmitAnswer(code, "host", 0)
	assert.ErrorIs(t, err, ErrInvalidPhase)

	_, err = e.AdvanceQuestion(ctx, code, "host")
	assert.ErrorIs(t, err, ErrInvalidPhase)

	assert.NoError(t, e.DiscardRoom(code))
}

func TestScenarioCapitalOfFrance(t *testing.T) {
	archiver := &MockArchiver{}
	archiver.On("Archive", mock.Anything, mock.MatchedBy(func(r FinalResult) bool {
		return r.Code == "GAME" && r.Questions == 2 && len(r.Standings) == 1 && r.Standings[0].Score == 100
	})).Return(nil).Once()

	e, rec := newTestEngine(t, Options{
		Archiver: archiver,
		NewCode:  sequentialCodes("GAME"),
	})
	ctx := context.Background()

	code, _, err := e.CreateRoom("player", "Player", 2)
	require.NoError(t, err)

	q, err := e.StartGame(code, "player")
	require.NoError(t, err)
	assert.Equal(t, "What is the capital of France?", q.Text)

	res, err := e.SubmitAnswer(code, "player", 2)
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 100, res.Player.Score)
	assert.Equal(t, 1, res.Player.Streak)

	adv, err := e.AdvanceQuestion(ctx, code, "player")
	require.NoError(t, err)
	require.False(t, adv.Ended)

	res, err = e.SubmitAnswer(code, "player", 0)
	require.NoError(t, err)
	assert.False(t, res.IsCorrect)
	assert.Equal(t, 100, res.Player.Score)
	assert.Equal(t, 0, res.Player.Streak)

	adv, err = e.AdvanceQuestion(ctx, code, "player")
	require.NoError(t, err)
	require.True(t, adv.Ended)
	require.Len(t, adv.Standings, 1)
	assert.Equal(t, "player", adv.Standings[0].ID)
	assert.Equal(t, 100, adv.Standings[0].Score)

	ended, ok := rec.last().(GameEnded)
	require.True(t, ok)
	assert.Equal(t, adv.Standings, ended.Players)

	archiver.AssertExpectations(t)
}

func TestArchiveFailureDoesNotFailAdvance(t *testing.T) {
	archiver := &MockArchiver{}
	archiver.On("Archive", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	e, _ := newTestEngine(t, Options{Archiver: archiver})
	ctx := context.Background()

	code, _, err := e.CreateRoom("host", "Host", 1)
	require.NoError(t, err)
	_, err = e.StartGame(code, "host")
	require.NoError(t, err)

	res, err := e.AdvanceQuestion(ctx, code, "host")
	require.NoError(t, err)
	assert.True(t, res.Ended)

	archiver.AssertExpectations(t)
}

func TestDiscardRoom(t *testing.T) {
	e, _ := newTestEngine(t, Options{NewCode: sequentialCodes("GONE", "GONE")})

	code, _, err := e.CreateRoom("host", "Host", 1)
	require.NoError(t, err)
	_, err = e.StartGame(code, "host")
	require.NoError(t, err)

	require.NoError(t, e.DiscardRoom(code))

	_, err = e.GetRoom(code)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	_, err = e.SubmitAnswer(code, "host", 2)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	_, err = e.AdvanceQuestion(context.Background(), code, "host")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.ErrorIs(t, e.DiscardRoom(code), ErrRoomNotFound)

	// the code is free again
	again, _, err := e.CreateRoom("host2", "Host", 1)
	require.NoError(t, err)
	assert.Equal(t, code, again)
}

func TestReap(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	e, _ := newTestEngine(t, Options{
		Now:     clock,
		NewCode: sequentialCodes("OLDD", "NEWW"),
	})

	old, _, err := e.CreateRoom("h1", "Old", 1)
	require.NoError(t, err)

	now = now.Add(time.Hour)

	fresh, _, err := e.CreateRoom("h2", "New", 1)
	require.NoError(t, err)

	reaped := e.Reap(now.Add(-30 * time.Minute))
	assert.Equal(t, []string{old}, reaped)

	_, err = e.GetRoom(old)
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = e.GetRoom(fresh)
	assert.NoError(t, err)
}

func TestSnapshotDoesNotAliasState(t *testing.T) {
	e, _ := newTestEngine(t, Options{})

	code, _, err := e.CreateRoom("host", "Host", 1)
	require.NoError(t, err)
	_, err = e.StartGame(code, "host")
	require.NoError(t, err)

	snap, err := e.GetRoom(code)
	require.NoError(t, err)

	snap.Players[0].Score = 9000
	snap.Question.Options[0] = "tampered"

	again, err := e.GetRoom(code)
	require.NoError(t, err)
	assert.Zero(t, again.Players[0].Score)
	assert.Equal(t, testQuestions[0].Options[0], again.Question.Options[0])
}

func TestRoomsAreIndependent(t *testing.T) {
	e, _ := newTestEngine(t, Options{})

	const rooms = 16

	var wg sync.WaitGroup
	codes := make([]string, rooms)

	for i := 0; i < rooms; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()

			host := fmt.Sprintf("host-%d", i)

			code, _, err := e.CreateRoom(host, "Host", 1)
			if !assert.NoError(t, err) {
				return
			}
			codes[i] = code

			_, err = e.StartGame(code, host)
			assert.NoError(t, err)
			_, err = e.SubmitAnswer(code, host, 2)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, rooms, e.Rooms())

	for _, code := range codes {
		snap, err := e.GetRoom(code)
		require.NoError(t, err)
		assert.Equal(t, 100, snap.Players[0].Score)
	}
}

func TestStaleQuestionGuards(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	ctx := context.Background()

	code, _, err := e.CreateRoom("host", "Host", 3)
	require.NoError(t, err)
	_, err = e.StartGame(code, "host")
	require.NoError(t, err)

	_, err = e.AdvanceQuestionFrom(ctx, code, "host", 0)
	require.NoError(t, err)

	// a timeout armed for question 0 fires late
	_, err = e.SubmitAnswerAt(code, "host", 0, TimeoutOption)
	assert.ErrorIs(t, err, ErrStaleQuestion)

	// as does a second advance racing the first
	_, err = e.AdvanceQuestionFrom(ctx, code, "host", 0)
	assert.ErrorIs(t, err, ErrStaleQuestion)

	_, err = e.SubmitAnswerAt(code, "host", -5, 1)
	assert.ErrorIs(t, err, ErrStaleQuestion)

	snap, err := e.GetRoom(code)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.QuestionIndex)
	assert.False(t, snap.Players[0].Answered)

	res, err := e.SubmitAnswerAt(code, "host", 1, 1)
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
}
