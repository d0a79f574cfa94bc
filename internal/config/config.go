// Package config loads the game configuration from an HCL file, falling
// back to sensible defaults when no file exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokercoach/internal/bot"
)

// Config represents the complete game configuration
type Config struct {
	Game   GameSettings   `hcl:"game,block"`
	Tutor  TutorSettings  `hcl:"tutor,block"`
	Player PlayerSettings `hcl:"player,block"`
}

// fileConfig mirrors Config with every block optional, so a config file may
// set only what it cares about.
type fileConfig struct {
	Game   *GameSettings   `hcl:"game,block"`
	Tutor  *TutorSettings  `hcl:"tutor,block"`
	Player *PlayerSettings `hcl:"player,block"`
}

// GameSettings contains table-level configuration
type GameSettings struct {
	StartingChips int    `hcl:"starting_chips,optional"`
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	Bots          int    `hcl:"bots,optional"`
	Difficulty    string `hcl:"difficulty,optional"`
	LogLevel      string `hcl:"log_level,optional"`
}

// TutorSettings configures the remote answer grader
type TutorSettings struct {
	APIURL         string `hcl:"api_url,optional"`
	Model          string `hcl:"model,optional"`
	TimeoutSeconds int    `hcl:"timeout_seconds,optional"`
}

// PlayerSettings contains the human player's identity
type PlayerSettings struct {
	Name string `hcl:"name,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Game: GameSettings{
			StartingChips: 1000,
			SmallBlind:    5,
			BigBlind:      10,
			Bots:          3,
			Difficulty:    "medium",
			LogLevel:      "warn",
		},
		Tutor: TutorSettings{
			TimeoutSeconds: 15,
		},
		Player: PlayerSettings{
			Name: "You",
		},
	}
}

// DefaultPath returns the platform config location, e.g.
// ~/.config/pokercoach/config.hcl on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "pokercoach", "config.hcl"), nil
}

// Load loads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var parsed fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	var config Config
	if parsed.Game != nil {
		config.Game = *parsed.Game
	}
	if parsed.Tutor != nil {
		config.Tutor = *parsed.Tutor
	}
	if parsed.Player != nil {
		config.Player = *parsed.Player
	}

	// Apply defaults for missing values
	def := Default()
	if config.Game.StartingChips == 0 {
		config.Game.StartingChips = def.Game.StartingChips
	}
	if config.Game.SmallBlind == 0 {
		config.Game.SmallBlind = def.Game.SmallBlind
	}
	if config.Game.BigBlind == 0 {
		config.Game.BigBlind = config.Game.SmallBlind * 2
	}
	if config.Game.Bots == 0 {
		config.Game.Bots = def.Game.Bots
	}
	if config.Game.Difficulty == "" {
		config.Game.Difficulty = def.Game.Difficulty
	}
	if config.Game.LogLevel == "" {
		config.Game.LogLevel = def.Game.LogLevel
	}
	if config.Tutor.TimeoutSeconds == 0 {
		config.Tutor.TimeoutSeconds = def.Tutor.TimeoutSeconds
	}
	if config.Player.Name == "" {
		config.Player.Name = def.Player.Name
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive")
	}
	if c.Game.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Game.BigBlind <= c.Game.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if c.Game.StartingChips < c.Game.BigBlind*10 {
		return fmt.Errorf("starting chips must cover at least 10 big blinds")
	}
	if c.Game.Bots < 1 || c.Game.Bots > 5 {
		return fmt.Errorf("bots must be between 1 and 5")
	}
	if _, err := bot.ParseDifficulty(c.Game.Difficulty); err != nil {
		return err
	}
	if c.Tutor.TimeoutSeconds <= 0 {
		return fmt.Errorf("tutor timeout must be positive")
	}
	return nil
}
