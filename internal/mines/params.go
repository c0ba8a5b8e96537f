package mines

import "fmt"

type GameParams struct {
	Width     int `json:"width" schema:"width,required"`
	Height    int `json:"height" schema:"height,required"`
	MineCount int `json:"mine_count" schema:"mine_count,required"`
}

func (p GameParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("board dimensions must be positive, got %dx%d", p.Width, p.Height)
	}
	if p.MineCount < 0 || p.MineCount >= p.Width*p.Height {
		return fmt.Errorf(
			"mine count must be between 0 and %d, got %d",
			p.Width*p.Height-1, p.MineCount,
		)
	}
	return nil
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}

var difficulties = map[string]GameParams{
	"beginner":     {Width: 9, Height: 9, MineCount: 10},
	"intermediate": {Width: 16, Height: 16, MineCount: 40},
	"expert":       {Width: 30, Height: 16, MineCount: 99},
	"ai-test":      {Width: 30, Height: 24, MineCount: 180},
}

// ParseDifficulty resolves a named difficulty preset.
func ParseDifficulty(name string) (GameParams, error) {
	if params, ok := difficulties[name]; ok {
		return params, nil
	}
	return GameParams{}, fmt.Errorf("unknown difficulty %q", name)
}
