package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pssnyder/MinesweeperAI/internal/mines"
)

// GameRecord is a finished run as shown on the records board.
type GameRecord struct {
	GameId     string  `json:"game_id"`
	Username   *string `json:"username"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	MineCount  int     `json:"mine_count"`
	Won        bool    `json:"won"`
	MovesMade  int     `json:"moves_made"`
	Guesses    int     `json:"guesses"`
	PlaytimeMs float64 `json:"playtime_ms"`
}

type GameRecordFilter struct {
	Username   *string
	GameParams *mines.GameParams
	WonOnly    bool
}

func (f GameRecordFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.WonOnly {
		clauses = append(clauses, "won = true")
	}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.GameParams != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_count = @mineCount",
		)
		args["width"] = f.GameParams.Width
		args["height"] = f.GameParams.Height
		args["mineCount"] = f.GameParams.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

// ListRecords returns finished runs, fewest guesses and shortest
// playtime first.
func (q *Queries) ListRecords(
	ctx context.Context, filter GameRecordFilter,
) ([]GameRecord, error) {
	query := `
	SELECT
		game_id::text AS game_id,
		username,
		width,
		height,
		mine_count,
		won,
		moves_made,
		guesses,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms
	FROM game
		LEFT OUTER JOIN player using (player_id)
	WHERE ended_at IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY guesses, playtime_ms;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[GameRecord])
}
