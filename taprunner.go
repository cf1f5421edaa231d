package imagetap

import (
	"encoding/json"
	"fmt"
)

// tapStep represents a single action in a tap script.
type tapStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Hit    bool    `json:"hit,omitempty"`
}

// tapScript is the top-level JSON structure for a tap script.
type tapScript struct {
	Steps []tapStep `json:"steps"`
}

// TapRunner sequences injected taps and result checks across ticks for
// automated testing. Attach to a Scene via SetTapRunner.
//
// Supported actions:
//
//	{"action": "tap", "x": 0.5, "y": 0.5}          normalized, y from the top
//	{"action": "wait", "frames": 3}
//	{"action": "expect", "label": "button", "hit": true}
//
// An expect step checks the named detector's result from the previous tick.
type TapRunner struct {
	steps     []tapStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadTapScript parses a JSON tap script and returns a TapRunner ready
// to be attached to a Scene via SetTapRunner.
func LoadTapScript(jsonData []byte) (*TapRunner, error) {
	var script tapScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse tap script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse tap script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tap", "wait", "expect":
		default:
			return nil, fmt.Errorf("parse tap script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TapRunner{steps: script.Steps}, nil
}

// SetTapRunner attaches a TapRunner to the scene. The runner's step method
// is called from Scene.Step before injected taps are processed.
func (s *Scene) SetTapRunner(runner *TapRunner) {
	s.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *TapRunner) Done() bool {
	return r.done
}

// Failures returns a message for every expect step that did not match.
func (r *TapRunner) Failures() []string {
	return r.failures
}

// step advances the runner by one tick. Called from Scene.Step.
func (r *TapRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		if r.waitCount == 0 && r.cursor >= len(r.steps) {
			r.done = true
		}
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "tap":
		s.InjectTap(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect":
		d := s.ImageTapByName(st.Label)
		switch {
		case d == nil:
			r.failures = append(r.failures, fmt.Sprintf("step %d: no detector %q", r.cursor-1, st.Label))
		case d.Tapped() != st.Hit:
			r.failures = append(r.failures, fmt.Sprintf("step %d: %q tapped = %v, want %v",
				r.cursor-1, st.Label, d.Tapped(), st.Hit))
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
