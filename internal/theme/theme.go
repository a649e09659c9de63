// Package theme resolves the light/dark display preference.
package theme

import (
	"os"
	"strconv"
	"strings"

	"github.com/pavelanni/qgen/internal/model"
)

// Resolve picks the theme from a stored preference, falling back to the
// system colour-scheme signal when nothing valid is stored.
func Resolve(stored string, systemDark bool) model.Theme {
	switch model.Theme(stored) {
	case model.ThemeDark:
		return model.ThemeDark
	case model.ThemeLight:
		return model.ThemeLight
	}
	if systemDark {
		return model.ThemeDark
	}
	return model.ThemeLight
}

// SystemPrefersDark reads the terminal's colour scheme from COLORFGBG
// ("fg;bg" or "fg;default;bg"). Background indexes 0-6 and 8 are dark.
func SystemPrefersDark() bool {
	return prefersDark(os.Getenv("COLORFGBG"))
}

func prefersDark(colorfgbg string) bool {
	if colorfgbg == "" {
		return false
	}
	parts := strings.Split(colorfgbg, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return false
	}
	return (bg >= 0 && bg <= 6) || bg == 8
}
