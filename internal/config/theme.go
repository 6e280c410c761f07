package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Theme is the color scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ParseTheme accepts light, dark or system in any case.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light, dark or system)", s)
	}
}

// Resolve maps system to the terminal's scheme. Terminals that advertise
// their colors set COLORFGBG to "fg;bg"; a dark background index means dark.
// Without a hint the light scheme is used.
func (t Theme) Resolve() Theme {
	if t == ThemeLight || t == ThemeDark {
		return t
	}
	v := os.Getenv("COLORFGBG")
	if v == "" {
		return ThemeLight
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return ThemeLight
	}
	if bg <= 6 || bg == 8 {
		return ThemeDark
	}
	return ThemeLight
}
