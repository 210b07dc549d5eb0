/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/Seednode/triviabox/games/trivia"
	"github.com/lmittmann/tint"
)

func newLogger(cfg *Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}

	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: logDate,
	}))
}

// logf writes request-level lines, which are only wanted with --verbose.
func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose || cfg.logger == nil {
		return
	}

	cfg.logger.Debug(fmt.Sprintf(format, args...))
}

// errorStatus maps engine errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, trivia.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, trivia.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, trivia.ErrGameAlreadyStarted),
		errors.Is(err, trivia.ErrInvalidPhase),
		errors.Is(err, trivia.ErrDuplicateAnswer),
		errors.Is(err, trivia.ErrStaleQuestion),
		errors.Is(err, trivia.ErrInsufficientPlayers):
		return http.StatusConflict
	case errors.Is(err, trivia.ErrUnknownPlayer),
		errors.Is(err, trivia.ErrInvalidPlayer),
		errors.Is(err, trivia.ErrInsufficientQuestions):
		return http.StatusUnprocessableEntity
	case errors.Is(err, trivia.ErrRoomCodesExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func newPage(cfg *Config, title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(getFavicon(cfg))
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"%s/\">%s</a></body></html>", cfg.prefix, body))

	return htmlBody.String()
}
