package doodle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// game adapts a Scene to ebiten.Game.
type game struct {
	ctx   context.Context
	scene *Scene
	err   error
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || g.scene.Stopped() {
		return ebiten.Termination
	}
	if err := g.scene.Update(); err != nil {
		g.err = err
		return err
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.scene.width, g.scene.height
}

// Run opens a window and runs the scene until ctx is cancelled, Stop is
// called, or the window is closed, all of which return nil. An error from a
// frame callback ends the run and is returned. Run must be called from the
// main goroutine.
func (s *Scene) Run(ctx context.Context) error {
	ebiten.SetWindowSize(s.width, s.height)
	ebiten.SetWindowTitle(s.opts.Title)
	ebiten.SetTPS(s.opts.TPS)
	if s.opts.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	Logger().Info("window opening",
		slog.String("title", s.opts.Title),
		slog.Int("width", s.width),
		slog.Int("height", s.height),
		slog.Int("tps", s.opts.TPS))

	g := &game{ctx: ctx, scene: s}
	err := ebiten.RunGame(g)
	Logger().Info("window closed", slog.Uint64("frames", s.frame))

	if g.err != nil {
		return g.err
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("doodle: run: %w", err)
	}
	return nil
}
