/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package trivia

import "errors"

var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrGameAlreadyStarted    = errors.New("game already started")
	ErrInvalidPhase          = errors.New("invalid phase for this command")
	ErrNotHost               = errors.New("only the host may do that")
	ErrUnknownPlayer         = errors.New("unknown player")
	ErrDuplicateAnswer       = errors.New("player already answered this question")
	ErrStaleQuestion         = errors.New("question is no longer current")
	ErrInsufficientPlayers   = errors.New("not enough players to start")
	ErrInsufficientQuestions = errors.New("not enough questions")
	ErrInvalidPlayer         = errors.New("player id and name must not be empty")
	ErrRoomCodesExhausted    = errors.New("no free room codes")
)
