package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pavelanni/qgen/internal/model"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		stored     string
		systemDark bool
		want       model.Theme
	}{
		{"dark", false, model.ThemeDark},
		{"light", true, model.ThemeLight},
		{"", true, model.ThemeDark},
		{"", false, model.ThemeLight},
		{"purple", true, model.ThemeDark},
		{"purple", false, model.ThemeLight},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.stored, tt.systemDark), "Resolve(%q, %v)", tt.stored, tt.systemDark)
	}
}

func TestPrefersDark(t *testing.T) {
	tests := map[string]bool{
		"":            false,
		"15;0":        true,
		"0;15":        false,
		"15;8":        true,
		"7;default;0": true,
		"12;7":        false,
		"garbage":     false,
	}
	for in, want := range tests {
		assert.Equal(t, want, prefersDark(in), "prefersDark(%q)", in)
	}
}

func TestSystemPrefersDarkReadsEnv(t *testing.T) {
	t.Setenv("COLORFGBG", "15;0")
	assert.True(t, SystemPrefersDark())
	t.Setenv("COLORFGBG", "0;15")
	assert.False(t, SystemPrefersDark())
}
