package workload

import "math"

// Level buckets a load for display.
type Level int

const (
	Light Level = iota
	Moderate
	Heavy
)

func LevelOf(load float64) Level {
	switch {
	case load < 0.3:
		return Light
	case load < 0.7:
		return Moderate
	default:
		return Heavy
	}
}

func (l Level) String() string {
	switch l {
	case Light:
		return "light"
	case Moderate:
		return "moderate"
	default:
		return "heavy"
	}
}

// Message is the dashboard line shown under the workload bar.
func (l Level) Message() string {
	switch l {
	case Light:
		return "Light workload - you're doing great!"
	case Moderate:
		return "Moderate workload - stay focused!"
	default:
		return "Heavy workload - take breaks when needed!"
	}
}

// Percent is the bar fill for load, capped at 100.
func Percent(load float64) int {
	return int(math.Round(math.Min(load*100, 100)))
}
