package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	TabSize          int    `json:"tab_size"`
	Theme            string `json:"theme"`
	MaxInputRows     int    `json:"max_input_rows"`
	BackslashNewline bool   `json:"backslash_newline"`
}

type ColorScheme struct {
	Name        string
	Background  tcell.Color
	Foreground  tcell.Color
	Selection   tcell.Color
	Prompt      tcell.Color
	Transcript  tcell.Color
	StatusBarBg tcell.Color
	StatusBarFg tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:        "Dark",
		Background:  tcell.ColorBlack,
		Foreground:  tcell.ColorWhite,
		Selection:   tcell.ColorDarkBlue,
		Prompt:      tcell.ColorAqua,
		Transcript:  tcell.ColorGray,
		StatusBarBg: tcell.ColorDarkBlue,
		StatusBarFg: tcell.ColorWhite,
	},
	"light": {
		Name:        "Light",
		Background:  tcell.ColorWhite,
		Foreground:  tcell.ColorBlack,
		Selection:   tcell.ColorLightBlue,
		Prompt:      tcell.ColorBlue,
		Transcript:  tcell.ColorGray,
		StatusBarBg: tcell.ColorLightBlue,
		StatusBarFg: tcell.ColorBlack,
	},
	"monokai": {
		Name:        "Monokai",
		Background:  tcell.NewRGBColor(39, 40, 34),
		Foreground:  tcell.NewRGBColor(248, 248, 242),
		Selection:   tcell.NewRGBColor(73, 72, 62),
		Prompt:      tcell.NewRGBColor(102, 217, 239),
		Transcript:  tcell.NewRGBColor(144, 144, 128),
		StatusBarBg: tcell.NewRGBColor(73, 72, 62),
		StatusBarFg: tcell.NewRGBColor(248, 248, 242),
	},
}

func Default() *Config {
	return &Config{
		TabSize:          4,
		Theme:            "monokai",
		MaxInputRows:     6,
		BackslashNewline: true,
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["monokai"]
	}
	return theme
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "promptline", "settings.json")
}

func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		// No settings file yet: run with defaults.
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.TabSize <= 0 {
		cfg.TabSize = 4
	}
	if cfg.MaxInputRows <= 0 {
		cfg.MaxInputRows = 6
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
