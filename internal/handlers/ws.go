package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pssnyder/MinesweeperAI/internal/ai"
)

const (
	defaultWatchDelay = 200 * time.Millisecond
	maxWatchDelay     = 2 * time.Second
)

type watchFrame struct {
	Move        *ai.Move `json:"move"`
	Explanation string   `json:"explanation"`
	Grid        string   `json:"grid"`
	Dead        bool     `json:"dead"`
	Won         bool     `json:"won"`
}

// Watch upgrades to a websocket and streams the solver's moves one by
// one until the game ends. The delay between moves comes from the
// "delay" query parameter in milliseconds.
func (h GameHandler) Watch(w http.ResponseWriter, r *http.Request) {
	game, ok := h.fetchGame(w, r)
	if !ok {
		return
	}

	state, err := game.DecodeState()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to decode game state", slog.Any("error", err))
		return
	}

	delay := defaultWatchDelay
	if delayStr := r.URL.Query().Get("delay"); delayStr != "" {
		if ms, err := strconv.Atoi(delayStr); err == nil && ms >= 0 {
			delay = min(time.Duration(ms)*time.Millisecond, maxWatchDelay)
		}
	}

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade connection", slog.Any("error", err))
		return
	}
	defer conn.Close()

	player := ai.NewPlayer(state, h.rnd)
	moves := 0
	for !state.IsOver() && moves < DefaultMoveCap {
		move, err := player.TakeTurn()
		if errors.Is(err, ai.ErrNoMoveAvailable) {
			break
		}
		if err != nil {
			h.logger.Error("solver failed", slog.Any("error", err))
			conn.WriteJSON(wrapError(err))
			break
		}
		moves++

		frame := watchFrame{
			Move:        move,
			Explanation: player.ExplainLastMove(),
			Grid:        state.Render(),
			Dead:        state.Dead,
			Won:         state.Won,
		}
		if err := conn.WriteJSON(frame); err != nil {
			h.logger.Warn("unable to write move frame", slog.Any("error", err))
			break
		}
		if !state.IsOver() {
			time.Sleep(delay)
		}
	}

	// the client may be gone; persist regardless
	if _, err := h.persist(
		context.Background(), game.GameId, state, player.Statistics(),
	); err != nil {
		h.logger.Error("unable to update game", slog.Any("error", err))
	}

	conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
}
