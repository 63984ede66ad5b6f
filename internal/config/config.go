package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/pbnjay/memory"
)

const defaultFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	FEN     string
	Depth   int
	HashMB  int // negative disables the table
	Threads int
	DBPath  string
	Divide  bool
	Debug   bool
}

func FromEnv() Config {
	return Config{
		FEN:     getenv("PERFT_FEN", defaultFEN),
		Depth:   getenvInt("PERFT_DEPTH", 0),
		HashMB:  getenvInt("PERFT_HASH_MB", -1),
		Threads: getenvInt("PERFT_THREADS", 1),
		DBPath:  getenv("PERFT_DB_PATH", ""),
	}
}

// RegisterFlags binds the command-line flags to c, using its current values
// as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.FEN, "fen", c.FEN, "FEN of the position to count from")
	fs.IntVar(&c.Depth, "depth", c.Depth, "search depth")
	fs.IntVar(&c.HashMB, "hash", c.HashMB, "transposition table size in MB; negative runs without a table")
	fs.IntVar(&c.Threads, "threads", c.Threads, "number of worker threads")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "sqlite file recording finished runs; empty disables")
	fs.BoolVar(&c.Divide, "divide", c.Divide, "print the node count below every root move")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "debug logging")
}

func (c Config) Validate() error {
	if c.Depth < 0 {
		return fmt.Errorf("%w: depth %d is negative", ErrInvalidConfig, c.Depth)
	}
	if c.Threads < 1 {
		return fmt.Errorf("%w: threads must be at least 1, got %d", ErrInvalidConfig, c.Threads)
	}
	if c.HashMB > 0 {
		if total := memory.TotalMemory(); total > 0 && uint64(c.HashMB)<<20 > total {
			return fmt.Errorf("%w: hash of %d MB exceeds system memory", ErrInvalidConfig, c.HashMB)
		}
	}
	return nil
}

func getenv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getenvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
