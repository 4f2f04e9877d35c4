package tunnel

import "math/rand"

const (
	autopilotMinLeg      = 20
	autopilotLegVariance = 50
	autopilotColorPeriod = 240
)

// Autopilot produces scripted flight input: constant forward thrust with a
// rotation heading that changes every few dozen steps and a periodic color
// change. The sequence is fixed by the seed.
type Autopilot struct {
	rng     *rand.Rand
	heading int
	legLeft int
	steps   int
}

// NewAutopilot returns an autopilot seeded with seed.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the input for one simulation step.
func (a *Autopilot) Next() Input {
	if a.legLeft <= 0 {
		a.newLeg()
	}
	a.legLeft--
	a.steps++

	in := Input{Keys: Keys{Forward: true}}
	switch a.heading {
	case -1:
		in.Keys.FineLeft = true
	case 1:
		in.Keys.FineRight = true
	}
	if a.steps%autopilotColorPeriod == 0 {
		in.Colors = []Color{Colors[a.rng.Intn(len(Colors))]}
	}
	return in
}

// newLeg picks a heading of -1, 0 or 1 and how many steps to hold it.
func (a *Autopilot) newLeg() {
	a.heading = a.rng.Intn(3) - 1
	a.legLeft = autopilotMinLeg + a.rng.Intn(autopilotLegVariance)
}
