package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pssnyder/MinesweeperAI/internal/ai"
	"github.com/pssnyder/MinesweeperAI/internal/mines"
)

// Game is one persisted solver run. State holds the gob-encoded
// mines.GameState; the counters accumulate across steps so a run can
// be resumed request by request.
type Game struct {
	GameId         int64
	PlayerId       *int64
	Width          int
	Height         int
	MineCount      int
	Dead           bool
	Won            bool
	State          []byte
	MovesMade      int
	FlagsPlaced    int
	Guesses        int
	Contradictions int
	StartedAt      pgtype.Timestamptz
	EndedAt        pgtype.Timestamptz
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

type CreateGameParams struct {
	PlayerId *int64
}

func (p CreateGameParams) UpdateArgs(args *pgx.NamedArgs) *pgx.NamedArgs {
	if p.PlayerId != nil {
		(*args)["player_id"] = *p.PlayerId
	}
	return args
}

func (q *Queries) CreateGame(
	ctx context.Context, state *mines.GameState, params CreateGameParams,
) (*Game, error) {
	buf, err := state.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"width":      state.Width,
		"height":     state.Height,
		"mine_count": state.MineCount,
		"dead":       state.Dead,
		"won":        state.Won,
		"state":      buf,
	}
	params.UpdateArgs(&args)

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game (
			player_id, width, height, mine_count, dead, won, state
		)
		VALUES (
			@player_id, @width, @height, @mine_count, @dead, @won, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Game])
}

func (q *Queries) FetchGame(ctx context.Context, gameId int64) (*Game, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM game WHERE game_id = $1", gameId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Game])
}

// DecodeState rebuilds the board from the stored blob.
func (g Game) DecodeState() (*mines.GameState, error) {
	return mines.DecodeGameState(g.State)
}

type UpdateGameParams struct {
	Dead    *bool
	Won     *bool
	EndedAt *time.Time
	State   *[]byte
	Stats   *ai.Statistics
}

func (p UpdateGameParams) SetClause() (string, map[string]any) {
	parts := make([]string, 0)
	args := make(map[string]any)

	if p.Dead != nil {
		parts = append(parts, "dead = @dead")
		args["dead"] = *p.Dead
	}
	if p.Won != nil {
		parts = append(parts, "won = @won")
		args["won"] = *p.Won
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}
	if p.Stats != nil {
		parts = append(parts,
			"moves_made = moves_made + @moves_made",
			"flags_placed = flags_placed + @flags_placed",
			"guesses = guesses + @guesses",
			"contradictions = contradictions + @contradictions",
		)
		args["moves_made"] = p.Stats.MovesMade
		args["flags_placed"] = p.Stats.FlagsPlaced
		args["guesses"] = p.Stats.Guesses
		args["contradictions"] = p.Stats.ContradictionsDetected
	}

	return strings.Join(parts, ", "), args
}

func (q *Queries) UpdateGame(
	ctx context.Context, gameId int64, params UpdateGameParams,
) (*Game, error) {
	setClause, args := params.SetClause()
	args["game_id"] = gameId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE game SET "+setClause+" WHERE game_id = @game_id RETURNING *",
		pgx.NamedArgs(args),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Game])
}
