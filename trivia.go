/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Seednode/triviabox/games/trivia"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"golang.org/x/time/rate"
)

const (
	playerCookieName = "triviabox_id"

	maxBodySize = 64 << 10
)

type createRequest struct {
	Name      string `json:"name"`
	Questions int    `json:"questions,omitempty"`
}

type joinRequest struct {
	Name string `json:"name"`
}

type answerRequest struct {
	Option   *int `json:"option"`
	Question *int `json:"question,omitempty"`
}

type createResponse struct {
	Code     string              `json:"code"`
	PlayerID string              `json:"player_id"`
	Room     trivia.RoomSnapshot `json:"room"`
}

type questionResponse struct {
	Question trivia.QuestionView `json:"question"`
}

// Gateway exposes one engine over HTTP and WebSocket. It is the engine's
// Notifier, relaying every event to the hub and to the question timers.
type Gateway struct {
	ctx    context.Context
	cfg    *Config
	engine *trivia.Engine
	hub    *Hub
	timers *questionTimers
}

func newGateway(ctx context.Context, cfg *Config, bank trivia.Bank) *Gateway {
	g := &Gateway{
		ctx: ctx,
		cfg: cfg,
		hub: newHub(),
	}

	g.timers = newQuestionTimers(g)
	g.engine = trivia.New(trivia.Options{
		Bank:       bank,
		Notifier:   g,
		Archiver:   &logArchiver{cfg: cfg},
		Logger:     cfg.logger,
		MinPlayers: cfg.minPlayers,
	})

	return g
}

func (g *Gateway) Notify(e trivia.Event) {
	g.hub.Notify(e)
	g.timers.observe(e)
}

// discard tears a room down everywhere: engine, timers and sockets.
func (g *Gateway) discard(code, reason string) error {
	if err := g.engine.DiscardRoom(code); err != nil {
		return err
	}

	code = trivia.NormalizeCode(code)
	g.timers.stop(code)
	g.hub.closeRoom(code, reason)

	return nil
}

func (g *Gateway) answer(code, playerID string, question *int, option int) (trivia.AnswerResult, error) {
	if question != nil {
		return g.engine.SubmitAnswerAt(code, playerID, *question, option)
	}

	return g.engine.SubmitAnswer(code, playerID, option)
}

func (g *Gateway) handleClientMessage(c *Client, msg ClientMessage) {
	var err error

	switch msg.Type {
	case "join":
		var snap trivia.RoomSnapshot
		snap, err = g.engine.JoinRoom(c.room, c.playerID, msg.Name)
		if err == nil {
			g.hub.sendTo(c, RoomSnapshotMessage{Type: "room_snapshot", PlayerID: c.playerID, Room: snap})
		}
	case "start":
		_, err = g.engine.StartGame(c.room, c.playerID)
	case "answer":
		if msg.Option == nil {
			err = errors.New("missing option")
			break
		}

		var res trivia.AnswerResult
		res, err = g.answer(c.room, c.playerID, msg.Question, *msg.Option)
		if err == nil {
			g.hub.sendTo(c, AnswerResultMessage{Type: "answer_result", AnswerResult: res})
		}
	case "advance":
		_, err = g.engine.AdvanceQuestion(g.ctx, c.room, c.playerID)
	case "sync":
		var snap trivia.RoomSnapshot
		snap, err = g.engine.GetRoom(c.room)
		if err == nil {
			g.hub.sendTo(c, RoomSnapshotMessage{Type: "room_snapshot", PlayerID: c.playerID, Room: snap})
		}
	default:
		// ignore unknown types
	}

	if err != nil {
		g.hub.sendTo(c, SimpleMessage{
			Type:    "error",
			Message: err.Error(),
		})
	}
}

func getOrSetPlayerID(cfg *Config, w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	return nil
}

func serveCreateRoom(g *Gateway, path string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		playerID := getOrSetPlayerID(g.cfg, w, r)

		var req createRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(g.cfg, w, http.StatusBadRequest, err)
			return
		}

		count := req.Questions
		if count == 0 {
			count = g.cfg.questionCount
		}

		code, snap, err := g.engine.CreateRoom(playerID, req.Name, count)
		if err != nil {
			writeError(g.cfg, w, errorStatus(err), err)
			return
		}

		logf(g.cfg, "GAMES: Created room %s for %s", code, realIP(r))

		w.Header().Set("Location", g.cfg.prefix+path+"/"+code)
		writeJSON(g.cfg, w, http.StatusCreated, createResponse{
			Code:     code,
			PlayerID: playerID,
			Room:     snap,
		})
	}
}

func serveGetRoom(g *Gateway) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		snap, err := g.engine.GetRoom(ps.ByName("code"))
		if err != nil {
			writeError(g.cfg, w, errorStatus(err), err)
			return
		}

		writeJSON(g.cfg, w, http.StatusOK, snap)
	}
}

func serveDiscardRoom(g *Gateway) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		playerID := getOrSetPlayerID(g.cfg, w, r)
		code := ps.ByName("code")

		snap, err := g.engine.GetRoom(code)
		if err != nil {
			writeError(g.cfg, w, errorStatus(err), err)
			return
		}

		if snap.HostPlayerID != playerID {
			err := fmt.Errorf("room %q: %w", snap.Code, trivia.ErrNotHost)
			writeError(g.cfg, w, errorStatus(err), err)
			return
		}

		if err := g.discard(code, "The host closed the room."); err != nil {
			writeError(g.cfg, w, errorStatus(err), err)
			return
		}

		logf(g.cfg, "GAMES: Host closed room %s", snap.Code)

		securityHeaders(g.cfg, w)
		w.WriteHeader(http.StatusNoContent)
	}
}

func serveJoinRoom(g *Gateway) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		playerID := getOrSetPlayerID(g.cfg, w, r)

		var req joinRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(g.cfg, w, http.StatusBadRequest, err)
			return
		}

		snap, err := g.engine.JoinRoom(ps.ByName("code"), playerID, req.Name)
		if err != nil {
			writeError(g.cfg, w, errorStatus(err), err)
			return
		}

		writeJSON(g.cfg, w, http.StatusOK, snap)
	}
}

func serveStartGame(g *Gateway) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		playerID := getOrSetPlayerID(g.cfg, w, r)

		view, err := g.engine.StartGame(ps.ByName("code"), playerID)
		if err != nil {
			writeError(g.cfg, w, errorStatus(err), err)
			return
		}

		writeJSON(g.cfg, w, http.StatusOK, questionResponse{Question: view})
	}
}

func serveSubmitAnswer(g *Gateway) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		playerID := getOrSetPlayerID(g.cfg, w, r)

		var req answerRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(g.cfg, w, http.StatusBadRequest, err)
			return
		}
		if req.Option == nil {
			writeError(g.cfg, w, http.StatusBadRequest, errors.New("missing option"))
			return
		}

		res, err := g.answer(ps.ByName("code"), playerID, req.Question, *req.Option)
		if err != nil {
			writeError(g.cfg, w, errorStatus(err), err)
			return
		}

		writeJSON(g.cfg, w, http.StatusOK, res)
	}
}

func serveAdvanceQuestion(g *Gateway) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		playerID := getOrSetPlayerID(g.cfg, w, r)

		res, err := g.engine.AdvanceQuestion(r.Context(), ps.ByName("code"), playerID)
		if err != nil {
			writeError(g.cfg, w, errorStatus(err), err)
			return
		}

		writeJSON(g.cfg, w, http.StatusOK, res)
	}
}

// WebSocket handler that subscribes to the room named by :code
func serveRoomWS(g *Gateway) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		playerID := getOrSetPlayerID(g.cfg, w, r)

		snap, err := g.engine.GetRoom(ps.ByName("code"))
		if err != nil {
			writeError(g.cfg, w, errorStatus(err), err)
			return
		}

		// carries the Set-Cookie for first-time players
		conn, err := upgrader.Upgrade(w, r, w.Header())
		if err != nil {
			logf(g.cfg, "ERROR: websocket upgrade for %s failed: %v", realIP(r), err)
			return
		}

		// the server's request timeouts still apply to the hijacked conn
		_ = conn.SetReadDeadline(time.Time{})
		_ = conn.SetWriteDeadline(time.Time{})

		client := &Client{
			conn:     conn,
			send:     make(chan any, 16),
			playerID: playerID,
			room:     snap.Code,
			limiter:  rate.NewLimiter(rate.Limit(g.cfg.rateLimit), max(1, int(g.cfg.rateLimit))),
		}

		g.hub.register(client)

		// a snapshot taken after registering, so no event can fall between
		// it and the live stream
		if fresh, err := g.engine.GetRoom(snap.Code); err == nil {
			g.hub.sendTo(client, RoomSnapshotMessage{
				Type:     "room_snapshot",
				PlayerID: playerID,
				Room:     fresh,
			})
		}

		logf(g.cfg, "GAMES: %s subscribed to room %s", realIP(r), snap.Code)

		go client.writePump()
		client.readPump(g)
	}
}

// QR handler: generates a PNG QR code for the room URL using go-qrcode.
func serveRoomQR(g *Gateway) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if _, err := g.engine.GetRoom(ps.ByName("code")); err != nil {
			writeError(g.cfg, w, errorStatus(err), err)
			return
		}

		// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		url := scheme + "://" + r.Host + strings.TrimSuffix(r.URL.Path, "/qr")

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			writeError(g.cfg, w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(g.cfg, w)
		_, _ = w.Write(png)
	}
}

type logArchiver struct {
	cfg *Config
}

func (a *logArchiver) Archive(ctx context.Context, result trivia.FinalResult) error {
	if a.cfg.logger == nil {
		return nil
	}

	names := make([]string, 0, len(result.Standings))
	for i, p := range result.Standings {
		names = append(names, fmt.Sprintf("%d. %s (%d)", i+1, p.Name, p.Score))
	}

	a.cfg.logger.InfoContext(ctx, "final standings",
		"room", result.Code,
		"questions", result.Questions,
		"duration", result.EndedAt.Sub(result.StartedAt).Round(time.Millisecond),
		"standings", strings.Join(names, ", "),
	)

	return nil
}

// registerTriviaGame sets up routes so that:
//   - POST   $path/rooms               → create a room
//   - GET    $path/rooms/:code         → room snapshot
//   - DELETE $path/rooms/:code         → close the room (host only)
//   - POST   $path/rooms/:code/join    → join the lobby
//   - POST   $path/rooms/:code/start   → start the game (host only)
//   - POST   $path/rooms/:code/answer  → answer the current question
//   - POST   $path/rooms/:code/advance → next question (host only)
//   - GET    $path/rooms/:code/ws      → WebSocket event stream
//   - GET    $path/rooms/:code/qr      → PNG QR code for the room URL
func registerTriviaGame(g *Gateway, path string, mux *httprouter.Router) {
	base := g.cfg.prefix + path + "/rooms"

	mux.POST(base, serveCreateRoom(g, path+"/rooms"))
	mux.GET(base+"/:code", serveGetRoom(g))
	mux.DELETE(base+"/:code", serveDiscardRoom(g))
	mux.POST(base+"/:code/join", serveJoinRoom(g))
	mux.POST(base+"/:code/start", serveStartGame(g))
	mux.POST(base+"/:code/answer", serveSubmitAnswer(g))
	mux.POST(base+"/:code/advance", serveAdvanceQuestion(g))
	mux.GET(base+"/:code/ws", serveRoomWS(g))
	mux.GET(base+"/:code/qr", serveRoomQR(g))
}
