package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/phanxgames/doodle"
	"github.com/phanxgames/doodle/raster"
	"github.com/phanxgames/doodle/scenefile"
)

func runRender(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	out := fs.String("o", "out.png", "output PNG path")
	frames := fs.Int("frames", 0, "frames to simulate before rendering (0 with -script: until the script ends)")
	script := fs.String("script", "", "test script (YAML or JSON steps) to drive the frames")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	setupLogging(*verbose)

	doc, err := scenefile.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	doc.Window.Headless = true
	s, err := doc.Build()
	if err != nil {
		return err
	}

	var runner *doodle.TestRunner
	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err = doodle.LoadTestScript(data)
		if err != nil {
			return err
		}
		s.SetTestRunner(runner)
	}

	if err := simulate(s, *frames, runner, stdout); err != nil {
		return err
	}
	if err := raster.SavePNG(s, *out); err != nil {
		return err
	}
	doodle.Logger().Info("rendered", "path", *out, "frames", s.Frame())
	return nil
}

// maxScriptFrames bounds a script run with no explicit frame count.
const maxScriptFrames = 100_000

// simulate advances the scene n frames, reporting progress to w. With a
// runner and n == 0 it runs until the script is done. Screenshots queued
// by the script are rasterized after the frame that queued them.
func simulate(s *doodle.Scene, n int, runner *doodle.TestRunner, w io.Writer) error {
	untilDone := n <= 0 && runner != nil
	if n <= 0 && !untilDone {
		return nil
	}

	total := n
	if untilDone {
		total = -1
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("simulating"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	defer bar.Close()

	for i := 0; untilDone || i < n; i++ {
		if untilDone {
			if runner.Done() {
				break
			}
			if i >= maxScriptFrames {
				return fmt.Errorf("script not done after %d frames", maxScriptFrames)
			}
		}
		if err := s.Update(); err != nil {
			return err
		}
		if err := saveScreenshots(s); err != nil {
			return err
		}
		if err := bar.Add(1); err != nil {
			return err
		}
	}
	return bar.Finish()
}

func saveScreenshots(s *doodle.Scene) error {
	for _, path := range s.TakeScreenshots() {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("screenshot dir: %w", err)
		}
		if err := raster.SavePNG(s, path); err != nil {
			return err
		}
		doodle.Logger().Info("screenshot written", "path", path)
	}
	return nil
}
