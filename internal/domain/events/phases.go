package events

// phase is one of the six match intensity bands. Intensity weights are
// monotonically non-decreasing from kickoff to added time.
type phase struct {
	fromMinute int // inclusive
	intensity  float64
}

var phases = []phase{
	{1, 1.00},  // minutes 1-15: settling in
	{16, 1.00}, // 16-35
	{36, 1.10}, // 36-45+: pushing before the break
	{46, 1.10}, // 46-65
	{66, 1.20}, // 66-80: game opens up
	{81, 1.35}, // 81-90+: late surge
}

// phaseIntensity returns the intensity weight for a minute. Minutes past
// regulation fall into the final phase.
func phaseIntensity(minute int) float64 {
	intensity := phases[0].intensity
	for _, p := range phases {
		if minute >= p.fromMinute {
			intensity = p.intensity
		}
	}
	return intensity
}

// phaseIndex returns the zero-based phase a minute belongs to.
func phaseIndex(minute int) int {
	idx := 0
	for i, p := range phases {
		if minute >= p.fromMinute {
			idx = i
		}
	}
	return idx
}
