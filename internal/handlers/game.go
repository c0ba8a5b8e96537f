package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pssnyder/MinesweeperAI/internal/ai"
	"github.com/pssnyder/MinesweeperAI/internal/config"
	"github.com/pssnyder/MinesweeperAI/internal/middleware"
	"github.com/pssnyder/MinesweeperAI/internal/mines"
	"github.com/pssnyder/MinesweeperAI/internal/repository"
)

// DefaultMoveCap bounds autoplay loops; a run that has not finished by
// then is stuck and gets persisted as-is.
const DefaultMoveCap = 999

type GameHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
	rnd    *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
		rnd:    rnd,
	}
}

var (
	ErrGameOver   = fmt.Errorf("game is already over")
	ErrBadGameId  = fmt.Errorf("game id must be an integer")
	ErrNoSuchGame = fmt.Errorf("no such game")
)

func (h GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	params, err := dto.Params()
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	state, err := mines.NewGame(params, dto.Start(params), h.rnd)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	createParams := repository.CreateGameParams{}
	if claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims); ok {
		createParams.PlayerId = &claims.PlayerId
	}

	game, err := h.repo.CreateGame(r.Context(), state, createParams)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to insert game", slog.Any("error", err))
		return
	}

	h.sendGame(w, game)
}

func (h GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	game, ok := h.fetchGame(w, r)
	if !ok {
		return
	}
	h.sendGame(w, game)
}

// Step advances a stored game by exactly one solver move.
func (h GameHandler) Step(w http.ResponseWriter, r *http.Request) {
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
	if state.IsOver() {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, h.logger, wrapError(ErrGameOver))
		return
	}

	player := ai.NewPlayer(state, h.rnd)
	move, err := player.TakeTurn()
	if errors.Is(err, ai.ErrNoMoveAvailable) {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("solver failed", slog.Any("error", err))
		return
	}

	game, err = h.persist(r.Context(), game.GameId, state, player.Statistics())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to update game", slog.Any("error", err))
		return
	}

	dto, err := NewGameDTO(game)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to build game dto", slog.Any("error", err))
		return
	}
	sendJSONOrLog(w, h.logger, StepDTO{
		Game:        dto,
		Move:        move,
		Explanation: player.ExplainLastMove(),
	})
}

// Autoplay runs the solver until the game ends or the move cap is hit.
func (h GameHandler) Autoplay(w http.ResponseWriter, r *http.Request) {
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
	if state.IsOver() {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, h.logger, wrapError(ErrGameOver))
		return
	}

	moveCap := DefaultMoveCap
	if capStr := r.URL.Query().Get("max_moves"); capStr != "" {
		if parsed, err := strconv.Atoi(capStr); err == nil && parsed > 0 {
			moveCap = parsed
		}
	}

	player := ai.NewPlayer(state, h.rnd)
	moves := make([]*ai.Move, 0)
	for !state.IsOver() && len(moves) < moveCap {
		move, err := player.TakeTurn()
		if errors.Is(err, ai.ErrNoMoveAvailable) {
			break
		}
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			h.logger.Error("solver failed", slog.Any("error", err))
			return
		}
		moves = append(moves, move)
	}

	game, err = h.persist(r.Context(), game.GameId, state, player.Statistics())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to update game", slog.Any("error", err))
		return
	}

	dto, err := NewGameDTO(game)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to build game dto", slog.Any("error", err))
		return
	}
	sendJSONOrLog(w, h.logger, AutoplayDTO{Game: dto, Moves: moves})
}

func (h GameHandler) Records(w http.ResponseWriter, r *http.Request) {
	var dto RecordsDTO
	if err := dec.Decode(&dto, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	filter, err := dto.Filter()
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	records, err := h.repo.ListRecords(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to list records", slog.Any("error", err))
		return
	}
	sendJSONOrLog(w, h.logger, records)
}

// fetchGame loads the game named by the path id, writing the error
// response itself when it fails.
func (h GameHandler) fetchGame(w http.ResponseWriter, r *http.Request) (*repository.Game, bool) {
	gameId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(ErrBadGameId))
		return nil, false
	}
	game, err := h.repo.FetchGame(r.Context(), gameId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		sendJSONOrLog(w, h.logger, wrapError(ErrNoSuchGame))
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch game", slog.Any("error", err))
		return nil, false
	}
	return game, true
}

// persist writes the mutated state and accumulated per-request stats
// back to storage, closing out the run when it ended.
func (h GameHandler) persist(
	ctx context.Context,
	gameId int64,
	state *mines.GameState,
	stats ai.Statistics,
) (*repository.Game, error) {
	params := repository.UpdateGameParams{
		Dead:  &state.Dead,
		Won:   &state.Won,
		Stats: &stats,
	}
	if state.IsOver() {
		state.RevealAll()
		endedAt := time.Now().UTC()
		params.EndedAt = &endedAt
	}
	buf, err := state.Bytes()
	if err != nil {
		return nil, err
	}
	params.State = &buf
	return h.repo.UpdateGame(ctx, gameId, params)
}

func (h GameHandler) sendGame(w http.ResponseWriter, game *repository.Game) {
	dto, err := NewGameDTO(game)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to build game dto", slog.Any("error", err))
		return
	}
	sendJSONOrLog(w, h.logger, dto)
}
