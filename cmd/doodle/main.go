// Command doodle plays and renders scene files.
//
// Usage:
//
//	doodle play [-watch] [-v] scene.yaml
//	doodle render [-o out.png] [-frames N] [-script steps.yaml] [-v] scene.yaml
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/phanxgames/doodle"
)

var errUsage = errors.New("usage: doodle play|render [flags] <scene>")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "doodle:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "play":
		return runPlay(args[1:])
	case "render":
		return runRender(args[1:], stdout)
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, errUsage.Error())
		return nil
	}
	return fmt.Errorf("unknown command %q", args[0])
}

// setupLogging routes library logs to stderr.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	doodle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
