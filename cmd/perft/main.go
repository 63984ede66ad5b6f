package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"perft/internal/app"
	"perft/internal/config"
)

func main() {
	cfg := config.FromEnv()
	fs := flag.NewFlagSet("perft", flag.ExitOnError)
	cfg.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	setupLogging(cfg.Debug)

	if !flagSet(fs, "depth") && os.Getenv("PERFT_DEPTH") == "" {
		fmt.Fprintln(os.Stderr, "perft: -depth is required")
		fs.Usage()
		os.Exit(2)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("setup-failed")
	}
	defer application.Close()

	if _, err := application.Perft(context.Background(), os.Stdout); err != nil {
		log.Error().Err(err).Msg("perft-failed")
		application.Close()
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
