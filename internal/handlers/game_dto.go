package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/pssnyder/MinesweeperAI/internal/ai"
	"github.com/pssnyder/MinesweeperAI/internal/mines"
	"github.com/pssnyder/MinesweeperAI/internal/repository"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type CreateGameDTO struct {
	Difficulty string `schema:"difficulty"`
	Width      int    `schema:"width"`
	Height     int    `schema:"height"`
	MineCount  int    `schema:"mine_count"`
	X          *int   `schema:"x"`
	Y          *int   `schema:"y"`
}

// Params resolves the requested board: a named difficulty wins over
// explicit dimensions.
func (dto CreateGameDTO) Params() (mines.GameParams, error) {
	if dto.Difficulty != "" {
		return mines.ParseDifficulty(dto.Difficulty)
	}
	params := mines.GameParams{
		Width:     dto.Width,
		Height:    dto.Height,
		MineCount: dto.MineCount,
	}
	return params, params.Validate()
}

// Start returns the first cell to uncover, defaulting to the board
// center.
func (dto CreateGameDTO) Start(params mines.GameParams) mines.Point {
	if dto.X != nil && dto.Y != nil {
		return mines.Point{X: *dto.X, Y: *dto.Y}
	}
	return mines.Point{X: params.Width / 2, Y: params.Height / 2}
}

func ParseCreateGameDTO(query url.Values) (dto CreateGameDTO, err error) {
	err = dec.Decode(&dto, query)
	return dto, err
}

type RecordsDTO struct {
	Username   string `schema:"username"`
	Difficulty string `schema:"difficulty"`
	WonOnly    bool   `schema:"won_only"`
}

func (dto RecordsDTO) Filter() (repository.GameRecordFilter, error) {
	filter := repository.GameRecordFilter{WonOnly: dto.WonOnly}
	if dto.Username != "" {
		filter.Username = &dto.Username
	}
	if dto.Difficulty != "" {
		params, err := mines.ParseDifficulty(dto.Difficulty)
		if err != nil {
			return filter, err
		}
		filter.GameParams = &params
	}
	return filter, nil
}

type GameDTO struct {
	GameId         string     `json:"game_id"`
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	MineCount      int        `json:"mine_count"`
	Dead           bool       `json:"dead"`
	Won            bool       `json:"won"`
	Grid           mines.Grid `json:"grid"`
	MovesMade      int        `json:"moves_made"`
	FlagsPlaced    int        `json:"flags_placed"`
	Guesses        int        `json:"guesses"`
	Contradictions int        `json:"contradictions"`
	StartedAt      int64      `json:"started_at"`
	EndedAt        *int64     `json:"ended_at,omitempty"`
}

func NewGameDTO(game *repository.Game) (*GameDTO, error) {
	state, err := game.DecodeState()
	if err != nil {
		return nil, fmt.Errorf("unable to decode stored game state: %w", err)
	}
	dto := &GameDTO{
		GameId:         strconv.FormatInt(game.GameId, 10),
		Width:          game.Width,
		Height:         game.Height,
		MineCount:      game.MineCount,
		Dead:           game.Dead,
		Won:            game.Won,
		Grid:           state.Player,
		MovesMade:      game.MovesMade,
		FlagsPlaced:    game.FlagsPlaced,
		Guesses:        game.Guesses,
		Contradictions: game.Contradictions,
		StartedAt:      game.StartedAt.Time.UnixMilli(),
	}
	if game.EndedAt.Valid {
		endedAt := game.EndedAt.Time.UnixMilli()
		dto.EndedAt = &endedAt
	}
	return dto, nil
}

type StepDTO struct {
	Game        *GameDTO `json:"game"`
	Move        *ai.Move `json:"move"`
	Explanation string   `json:"explanation"`
}

type AutoplayDTO struct {
	Game  *GameDTO   `json:"game"`
	Moves []*ai.Move `json:"moves"`
}
