// Package flags parses command-line flags and environment variables into
// tagged opts structs.
package flags

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
)

// MustParse parses os.Args and env into opts.
func MustParse(opts any) {
	MustParseArgs(opts, os.Args)
}

// MustParseArgs parses the given args into opts.
func MustParseArgs(opts any, args []string) {
	if err := ParseArgs(opts, args); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		slog.Error("parsing args", "error", err)
		os.Exit(1)
	}
}

// ParseArgs parses the given args into opts.
func ParseArgs(opts any, args []string) error {
	if _, err := flags.ParseArgs(opts, args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	return nil
}
