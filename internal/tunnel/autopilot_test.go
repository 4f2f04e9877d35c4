package tunnel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAutopilotDeterministic(t *testing.T) {
	a, b := NewAutopilot(7), NewAutopilot(7)
	var seqA, seqB []Input
	for i := 0; i < 2*autopilotColorPeriod; i++ {
		seqA = append(seqA, a.Next())
		seqB = append(seqB, b.Next())
	}
	if diff := cmp.Diff(seqA, seqB); diff != "" {
		t.Errorf("same seed produced different input (-a +b):\n%s", diff)
	}
}

func TestAutopilotFliesForward(t *testing.T) {
	a := NewAutopilot(1)
	v := NewView(64, 64, ColorWhite)
	colors := 0
	for i := 0; i < autopilotColorPeriod*3; i++ {
		in := a.Next()
		if !in.Keys.Forward {
			t.Fatalf("step %d: autopilot stopped thrusting", i)
		}
		if in.Keys.FineLeft && in.Keys.FineRight {
			t.Fatalf("step %d: conflicting rotation", i)
		}
		colors += len(in.Colors)
		if v.Step(in, 64, 64) {
			t.Fatalf("step %d: autopilot quit", i)
		}
	}
	if colors != 3 {
		t.Errorf("color changes = %d, want 3", colors)
	}
	if v.Translation != int32(autopilotColorPeriod*3*MovementSpeed) {
		t.Errorf("translation = %d", v.Translation)
	}
}
