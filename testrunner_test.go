package grove

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`
steps:
  - action: move
    x: 10
    y: 20
  - action: click
    x: 100
    y: 200
  - action: key
    key: enter
    mods: [shift, ctrl]
  - action: wait
    frames: 3
`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "move" || runner.steps[0].X != 10 || runner.steps[0].Y != 20 {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Key != "enter" || !slices.Equal(runner.steps[2].Mods, []string{"shift", "ctrl"}) {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Action != "wait" || runner.steps[3].Frames != 3 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadScriptAcceptsJSON(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "press", "x": 1, "y": 2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(runner.steps) != 1 || runner.steps[0].Action != "press" {
		t.Errorf("steps = %+v", runner.steps)
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"malformed", "steps: [", "parse script"},
		{"unknown action", "steps:\n  - action: screenshot\n", "unknown action"},
		{"unknown key", "steps:\n  - action: key\n    key: NoSuchKey\n", "unknown key"},
		{"missing key", "steps:\n  - action: key\n", "unknown key"},
		{"unknown modifier", "steps:\n  - action: click\n    mods: [hyper]\n", "unknown modifier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadScriptEmpty(t *testing.T) {
	_, err := LoadScript([]byte(`steps: []`))
	if !errors.Is(err, ErrEmptyScript) {
		t.Errorf("err = %v, want ErrEmptyScript", err)
	}
}

func TestScriptRunnerClick(t *testing.T) {
	st, _, log := inputState(t)
	mgr := NewEventManager()

	runner, err := LoadScript([]byte("steps:\n  - action: click\n    x: 50\n    y: 50\n"))
	if err != nil {
		t.Fatal(err)
	}
	st.SetScriptRunner(runner)

	for i := 0; i < 10 && !runner.Done(); i++ {
		frame(st, mgr)
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	if want := []string{"down", "up"}; !slices.Equal(*log, want) {
		t.Errorf("button saw %v, want %v", *log, want)
	}
}

func TestScriptRunnerWait(t *testing.T) {
	st := NewState()
	runner, err := LoadScript([]byte("steps:\n  - action: wait\n    frames: 3\n"))
	if err != nil {
		t.Fatal(err)
	}

	frames := 0
	for !runner.Done() {
		runner.Step(st)
		frames++
		if frames > 10 {
			t.Fatal("runner did not finish")
		}
	}
	// Three wait frames, then one to notice the script ended.
	if frames != 4 {
		t.Errorf("frames = %d, want 4", frames)
	}
}

func TestScriptRunnerKey(t *testing.T) {
	st, btn, log := inputState(t)
	st.SetFocus(btn)
	mgr := NewEventManager()

	runner, err := LoadScript([]byte("steps:\n  - action: key\n    key: Space\n"))
	if err != nil {
		t.Fatal(err)
	}
	st.SetScriptRunner(runner)
	for i := 0; i < 10 && !runner.Done(); i++ {
		frame(st, mgr)
	}

	if want := []string{"keydown:Space", "keyup:Space"}; !slices.Equal(*log, want) {
		t.Errorf("button saw %v, want %v", *log, want)
	}
}
