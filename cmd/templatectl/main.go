// templatectl validates funding templates, prints their metadata and rolls
// calculation values up into funding line totals from the command line.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := newRootCmd(log).Execute(); err != nil {
		if !errors.Is(err, errInvalidTemplate) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
