package log

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLevelSelection(t *testing.T) {
	cases := []struct {
		name        string
		environment string
		level       string
		want        zerolog.Level
	}{
		{"development default", "development", "", zerolog.DebugLevel},
		{"production default", "production", "", zerolog.InfoLevel},
		{"explicit level wins", "production", "warn", zerolog.WarnLevel},
		{"garbage falls back", "production", "shout", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger := New(tc.environment, tc.level)
			if logger.GetLevel() != tc.want {
				t.Errorf("level = %v, want %v", logger.GetLevel(), tc.want)
			}
		})
	}
}
