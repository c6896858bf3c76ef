package doodle

import (
	"log/slog"
	"time"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	submitTime   time.Duration
	commandCount int
	meshCount    int
	imageCount   int
}

// debugLog reports timing and draw-call stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	Logger().Debug("frame",
		slog.Duration("traverse", stats.traverseTime),
		slog.Duration("submit", stats.submitTime),
		slog.Duration("total", stats.traverseTime+stats.submitTime),
		slog.Int("commands", stats.commandCount),
		slog.Int("meshes", stats.meshCount),
		slog.Int("images", stats.imageCount),
	)
}

// globalDebug mirrors the most recently set Scene debug flag so that tree
// operations, which lack a Scene pointer, can check it cheaply.
var globalDebug bool

func debugEnabled() bool { return globalDebug }

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *node) {
	depth := 1
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("tree depth exceeds threshold",
			slog.Int("depth", depth),
			slog.Int("threshold", debugMaxTreeDepth),
			slog.String("shape", n.describe()))
	}
}

// debugCheckChildCount warns if a container has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(c *Container) {
	if len(c.children) > debugMaxChildCount {
		Logger().Warn("container has too many children",
			slog.String("container", c.describe()),
			slog.Int("children", len(c.children)),
			slog.Int("threshold", debugMaxChildCount))
	}
}

// countCommands splits the command list into mesh and image draws.
func countCommands(commands []drawCommand) (meshes, images int) {
	for i := range commands {
		switch commands[i].typ {
		case commandMesh:
			meshes++
		case commandImage:
			images++
		}
	}
	return meshes, images
}
