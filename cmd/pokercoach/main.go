package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/lox/pokercoach/internal/config"
	"github.com/lox/pokercoach/internal/ui"
)

var version = "dev"

var CLI struct {
	Config  string           `short:"c" long:"config" help:"Path to HCL configuration file"`
	NoColor bool             `long:"no-color" help:"Disable colored output"`
	Version kong.VersionFlag `short:"v" long:"version" help:"Print version and exit"`

	Play PlayCommand `cmd:"" default:"1" help:"Play a coached poker session"`
	Odds OddsCommand `cmd:"" help:"Calculate outs and odds for a given hand"`
}

func main() {
	// Environment overrides (API keys live in .env during development)
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("pokercoach"),
		kong.Description("Terminal Texas Hold'em that teaches pot odds and outs."),
		kong.Vars{"version": version},
	)

	if CLI.NoColor {
		ui.DisableColors()
	}

	cfgPath := CLI.Config
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			fmt.Printf("Error locating config: %v\n", err)
			ctx.Exit(1)
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		ctx.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	err = ctx.Run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}
}
