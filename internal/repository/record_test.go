package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pssnyder/MinesweeperAI/internal/ai"
	"github.com/pssnyder/MinesweeperAI/internal/mines"
)

func TestGameRecordFilterWhereClause(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		clause, args := GameRecordFilter{}.WhereClause()
		assert.Empty(t, clause)
		assert.Empty(t, args)
	})

	t.Run("full", func(t *testing.T) {
		username := "ada"
		params := mines.GameParams{Width: 9, Height: 9, MineCount: 10}
		clause, args := GameRecordFilter{
			Username:   &username,
			GameParams: &params,
			WonOnly:    true,
		}.WhereClause()

		assert.Equal(
			t,
			"won = true AND username = @username AND width = @width"+
				" AND height = @height AND mine_count = @mineCount",
			clause,
		)
		assert.Equal(t, "ada", args["username"])
		assert.Equal(t, 9, args["width"])
		assert.Equal(t, 10, args["mineCount"])
	})
}

func TestUpdateGameParamsSetClause(t *testing.T) {
	won := true
	endedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stats := ai.Statistics{MovesMade: 3, FlagsPlaced: 1, Guesses: 2}

	clause, args := UpdateGameParams{
		Won:     &won,
		EndedAt: &endedAt,
		Stats:   &stats,
	}.SetClause()

	assert.Contains(t, clause, "won = @won")
	assert.Contains(t, clause, "ended_at = @ended_at")
	assert.Contains(t, clause, "moves_made = moves_made + @moves_made")
	assert.NotContains(t, clause, "dead =")
	assert.NotContains(t, clause, "state =")

	assert.Equal(t, true, args["won"])
	assert.Equal(t, endedAt, args["ended_at"])
	assert.Equal(t, 3, args["moves_made"])
	assert.Equal(t, 2, args["guesses"])
	assert.Equal(t, 0, args["contradictions"])
}
