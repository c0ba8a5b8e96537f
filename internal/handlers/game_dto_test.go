package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pssnyder/MinesweeperAI/internal/mines"
)

func TestParseCreateGameDTO(t *testing.T) {
	t.Run("explicit dimensions", func(t *testing.T) {
		query := url.Values{
			"width":      {"16"},
			"height":     {"16"},
			"mine_count": {"40"},
		}
		dto, err := ParseCreateGameDTO(query)
		require.NoError(t, err)

		params, err := dto.Params()
		require.NoError(t, err)
		assert.Equal(t, mines.GameParams{Width: 16, Height: 16, MineCount: 40}, params)
		assert.Equal(t, mines.Point{X: 8, Y: 8}, dto.Start(params))
	})

	t.Run("difficulty wins over dimensions", func(t *testing.T) {
		query := url.Values{
			"difficulty": {"expert"},
			"width":      {"2"},
			"height":     {"2"},
			"mine_count": {"1"},
		}
		dto, err := ParseCreateGameDTO(query)
		require.NoError(t, err)

		params, err := dto.Params()
		require.NoError(t, err)
		assert.Equal(t, mines.GameParams{Width: 30, Height: 16, MineCount: 99}, params)
	})

	t.Run("explicit start cell", func(t *testing.T) {
		query := url.Values{
			"difficulty": {"beginner"},
			"x":          {"2"},
			"y":          {"3"},
		}
		dto, err := ParseCreateGameDTO(query)
		require.NoError(t, err)

		params, err := dto.Params()
		require.NoError(t, err)
		assert.Equal(t, mines.Point{X: 2, Y: 3}, dto.Start(params))
	})

	t.Run("invalid dimensions", func(t *testing.T) {
		dto, err := ParseCreateGameDTO(url.Values{
			"width":      {"0"},
			"height":     {"5"},
			"mine_count": {"1"},
		})
		require.NoError(t, err)
		_, err = dto.Params()
		assert.Error(t, err)
	})

	t.Run("unknown difficulty", func(t *testing.T) {
		dto, err := ParseCreateGameDTO(url.Values{"difficulty": {"casual"}})
		require.NoError(t, err)
		_, err = dto.Params()
		assert.Error(t, err)
	})
}

func TestRecordsDTOFilter(t *testing.T) {
	dto := RecordsDTO{Username: "ada", Difficulty: "beginner", WonOnly: true}
	filter, err := dto.Filter()
	require.NoError(t, err)

	require.NotNil(t, filter.Username)
	assert.Equal(t, "ada", *filter.Username)
	require.NotNil(t, filter.GameParams)
	assert.Equal(t, mines.GameParams{Width: 9, Height: 9, MineCount: 10}, *filter.GameParams)
	assert.True(t, filter.WonOnly)

	empty, err := RecordsDTO{}.Filter()
	require.NoError(t, err)
	assert.Nil(t, empty.Username)
	assert.Nil(t, empty.GameParams)
}
