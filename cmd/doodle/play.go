package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/phanxgames/doodle"
	"github.com/phanxgames/doodle/scenefile"
)

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	watch := fs.Bool("watch", false, "reload the scene when the file changes")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	setupLogging(*verbose)
	path := fs.Arg(0)

	doc, err := scenefile.Load(path)
	if err != nil {
		return err
	}
	s, err := doc.Build()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *watch {
		var changed atomic.Bool
		w, err := watchFile(path, func() { changed.Store(true) })
		if err != nil {
			return err
		}
		defer w.Close()

		// Reloads run on the game loop, where scene mutation is allowed.
		s.Animate(func(float64) error {
			if changed.Swap(false) {
				reload(s, path)
			}
			return nil
		})
	}
	return s.Run(ctx)
}

// reload replaces the scene's shapes with the file's current contents. A
// file that fails to load leaves the scene untouched.
func reload(s *doodle.Scene, path string) {
	log := doodle.Logger()
	doc, err := scenefile.Load(path)
	if err != nil {
		log.Warn("reload failed", "path", path, "err", err)
		return
	}
	shapes, err := doc.BuildShapes()
	if err != nil {
		log.Warn("reload failed", "path", path, "err", err)
		return
	}
	s.Root().RemoveAll()
	for _, sh := range shapes {
		s.Add(sh)
	}
	if w, h := s.Size(); doc.Window.Width != 0 && (doc.Window.Width != w || doc.Window.Height != h) {
		log.Info("window size changes need a restart", "path", path)
	}
	log.Info("scene reloaded", "path", path, "shapes", len(shapes))
}
