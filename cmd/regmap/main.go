package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"regmap/internal/config"
	"regmap/internal/storage"
)

var version = "0.1.0"

func main() {
	cfg, err := config.Load()
	must(err)

	root := &cobra.Command{
		Use:   "regmap",
		Short: "Register address list extractor",
		Long: `regmap turns the register address list of a scanned driver manual into
a canonical dec,hex,name table and C++ lookup-table sources.

Example:
  regmap generate --pdf HM-60506E.pdf --pages 227-242
  regmap lookup --address 0x007D`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(generateCmd(&cfg))
	root.AddCommand(parseCmd())
	root.AddCommand(lookupCmd(&cfg))
	root.AddCommand(sourcesCmd(&cfg))
	root.AddCommand(convertCmd())

	must(root.Execute())
}

func newLogger(cfg *config.Config) *slog.Logger {
	logger := config.NewLogger(*cfg)
	slog.SetDefault(logger)
	return logger
}

func openDB(cfg *config.Config) (*storage.DB, error) {
	if err := cfg.Require("DB_PATH", cfg.DBPath); err != nil {
		return nil, err
	}
	return storage.Open(cfg.DBPath)
}

// parseAddress accepts 0x007D, 007DH/007dh and plain hex digits.
func parseAddress(s string) (uint16, error) {
	v := strings.TrimSpace(s)
	lower := strings.ToLower(v)
	switch {
	case strings.HasPrefix(lower, "0x"):
		v = v[2:]
	case strings.HasSuffix(lower, "h"):
		v = v[:len(v)-1]
	}
	addr, err := strconv.ParseUint(v, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid register address %q", s)
	}
	return uint16(addr), nil
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
