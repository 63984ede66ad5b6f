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
	"perft/internal/suite"
)

func main() {
	cfg := config.FromEnv()
	fs := flag.NewFlagSet("perftsuite", flag.ExitOnError)
	cfg.RegisterFlags(fs)
	epdPath := fs.String("epd", "", "perft suite file; empty runs the built-in reference positions")
	maxDepth := fs.Int("max-depth", 4, "deepest depth to check per position")
	_ = fs.Parse(os.Args[1:])

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cases := suite.Standard()
	if *epdPath != "" {
		f, err := os.Open(*epdPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open-epd")
		}
		cases, err = suite.ParseEPD(f)
		_ = f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("parse-epd")
		}
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("setup-failed")
	}
	defer application.Close()

	mismatches, err := application.Suite(context.Background(), cases, *maxDepth)
	if err != nil {
		log.Error().Err(err).Msg("suite-failed")
		application.Close()
		os.Exit(1)
	}
	for _, m := range mismatches {
		fmt.Println("FAIL", m)
	}
	if len(mismatches) > 0 {
		application.Close()
		os.Exit(1)
	}
	fmt.Printf("ok: %d positions\n", len(cases))
}
