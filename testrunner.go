package doodle

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Key    KeyCode `yaml:"key,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// testActions maps each script action to its effect. The result is the
// number of extra frames the runner idles afterwards.
var testActions = map[string]func(s *Scene, st testStep) int{
	"screenshot": func(s *Scene, st testStep) int { s.Screenshot(st.Label); return 0 },
	"click":      func(s *Scene, st testStep) int { s.InjectClick(st.X, st.Y); return 0 },
	"drag": func(s *Scene, st testStep) int {
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
		return 0
	},
	"key":     func(s *Scene, st testStep) int { s.InjectKey(st.Key); return 0 },
	"keydown": func(s *Scene, st testStep) int { s.InjectKeyDown(st.Key); return 0 },
	"keyup":   func(s *Scene, st testStep) int { s.InjectKeyUp(st.Key); return 0 },
	// The frame that starts a wait counts toward it.
	"wait": func(_ *Scene, st testStep) int { return max(st.Frames-1, 0) },
}

// TestRunner sequences injected input events and screenshots across frames
// for automated testing. Attach to a Scene via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML or JSON test script and returns a TestRunner
// ready to be attached to a Scene via SetTestRunner.
//
//	steps:
//	  - {action: click, x: 120, y: 80}
//	  - {action: drag, fromX: 10, fromY: 10, toX: 200, toY: 10, frames: 8}
//	  - {action: key, key: 87}
//	  - {action: wait, frames: 30}
//	  - {action: screenshot, label: after-drag}
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("doodle: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("doodle: parse test script: no steps")
	}
	for i, st := range script.Steps {
		if _, ok := testActions[st.Action]; !ok {
			return nil, fmt.Errorf("doodle: parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before input is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step runs at the start of every Scene.Update. A step only starts once
// the injected input of the previous one has been delivered.
func (r *TestRunner) step(s *Scene) {
	switch {
	case r.done, s.pendingInput():
		return
	case r.waitCount > 0:
		r.waitCount--
		return
	case r.cursor >= len(r.steps):
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	r.waitCount = testActions[st.Action](s, st)

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !s.pendingInput() {
		r.done = true
	}
}
