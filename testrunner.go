package grove

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string   `yaml:"action"`
	X      float64  `yaml:"x,omitempty"`
	Y      float64  `yaml:"y,omitempty"`
	Key    string   `yaml:"key,omitempty"`
	Mods   []string `yaml:"mods,omitempty"`
	Frames int      `yaml:"frames,omitempty"`
}

// script is the top-level document of an input script.
type script struct {
	Steps []scriptStep `yaml:"steps"`
}

// ErrEmptyScript is returned by LoadScript for a script without steps.
var ErrEmptyScript = errors.New("grove: script has no steps")

// ScriptRunner feeds scripted input into a State one step per frame, for
// headless replays and tests. Attach it with State.SetScriptRunner or call
// Step directly.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML (or JSON) input script:
//
//	steps:
//	  - action: move
//	    x: 40
//	    y: 20
//	  - action: click
//	    x: 40
//	    y: 20
//	  - action: key
//	    key: Enter
//	    mods: [shift]
//	  - action: wait
//	    frames: 3
//
// Unknown actions, key names and modifiers are rejected here rather than
// at replay time.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("grove: parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i, step := range s.Steps {
		switch step.Action {
		case "move", "press", "release", "click", "wait":
		case "key":
			if _, ok := lookupKey(step.Key); !ok {
				return nil, fmt.Errorf("grove: script step %d: unknown key %q", i, step.Key)
			}
		default:
			return nil, fmt.Errorf("grove: script step %d: unknown action %q", i, step.Action)
		}
		if _, err := parseMods(step.Mods); err != nil {
			return nil, fmt.Errorf("grove: script step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches r to the state. ProcessInput steps it once per
// frame before draining injected input. A nil r detaches.
func (st *State) SetScriptRunner(r *ScriptRunner) {
	st.runner = r
}

// Done reports whether every step has been executed and its input drained.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *ScriptRunner) Step(st *State) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(st.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	step := r.steps[r.cursor]
	r.cursor++

	switch step.Action {
	case "move":
		st.InjectMove(step.X, step.Y)
	case "press":
		st.InjectPress(step.X, step.Y)
	case "release":
		st.InjectRelease(step.X, step.Y)
	case "click":
		st.InjectClick(step.X, step.Y)
	case "key":
		key, _ := lookupKey(step.Key)
		mods, _ := parseMods(step.Mods)
		st.InjectKey(key, mods)
	case "wait":
		if step.Frames > 0 {
			r.waitCount = step.Frames - 1 // this frame counts as one
		}
	}
	st.debugf("script: step %d %s", r.cursor-1, step.Action)
}

// lookupKey resolves a key by its ebiten name, case-insensitively.
func lookupKey(name string) (ebiten.Key, bool) {
	if name == "" {
		return 0, false
	}
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, true
		}
	}
	return 0, false
}

func parseMods(names []string) (KeyModifiers, error) {
	var mods KeyModifiers
	for _, n := range names {
		switch strings.ToLower(n) {
		case "shift":
			mods |= ModShift
		case "ctrl", "control":
			mods |= ModCtrl
		case "alt", "option":
			mods |= ModAlt
		case "meta", "cmd", "super":
			mods |= ModMeta
		default:
			return 0, fmt.Errorf("unknown modifier %q", n)
		}
	}
	return mods, nil
}
