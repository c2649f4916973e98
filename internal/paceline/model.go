package paceline

import (
	"fmt"
	"math"
	"time"
)

// RiderData holds the physiological numbers of a rider
type RiderData struct {
	FTP    float64 // Functional Threshold Power in watts
	Weight float64 // Body weight in kg
}

// WKg returns FTP per kilogram, or 0 when no weight is known
func (d RiderData) WKg() float64 {
	if d.Weight <= 0 {
		return 0
	}
	return d.FTP / d.Weight
}

// RiderPowerPlan is one rider's static input to the rotation engine.
//
// PowerByPosition maps the distance behind the puller to a power target:
//
//	[0] = power while pulling (front of the paceline)
//	[1] = power in 2nd position
//	[k] = power at back-distance k
//
// Positions past the end of the table reuse the last entry.
type RiderPowerPlan struct {
	Name            string
	PullDuration    time.Duration
	PowerByPosition []int
	RiderData       RiderData
}

// GetPowerAtPosition returns the target power for a 0-based paceline position
func (p RiderPowerPlan) GetPowerAtPosition(position int) (int, error) {
	if position < 0 {
		return 0, fmt.Errorf("%w: rider %q position %d", ErrNegativePosition, p.Name, position)
	}
	if len(p.PowerByPosition) == 0 {
		return 0, fmt.Errorf("%w: rider %q", ErrEmptyPowerTable, p.Name)
	}
	return p.PowerByPosition[min(position, len(p.PowerByPosition)-1)], nil
}

// clone returns a copy that shares no slices with p
func (p RiderPowerPlan) clone() RiderPowerPlan {
	c := p
	c.PowerByPosition = append([]int(nil), p.PowerByPosition...)
	return c
}

// PacelinePosition is a single rider's slot within one pull
type PacelinePosition struct {
	Rider          RiderPowerPlan
	PositionInPull int // 0 = pulling
	TargetPower    int // watts
}

// Pull is one discrete segment of the paceline, led by the rider at position 0
type Pull struct {
	PullNumber int // 1-based
	Duration   time.Duration
	Positions  []PacelinePosition // ordered by PositionInPull
}

// Puller returns the rider at the front of the pull
func (p Pull) Puller() RiderPowerPlan {
	return p.Positions[0].Rider
}

// PositionOf returns the slot held by the named rider, if present
func (p Pull) PositionOf(name string) (PacelinePosition, bool) {
	for _, pos := range p.Positions {
		if pos.Rider.Name == name {
			return pos, true
		}
	}
	return PacelinePosition{}, false
}

// PacelinePlan is the complete rotation plan for a team
type PacelinePlan struct {
	Riders    []RiderPowerPlan // private copy of the roster, in input order
	Rotations int
	Pulls     []Pull
}

// TotalDuration returns the sum of all pull durations
func (p *PacelinePlan) TotalDuration() time.Duration {
	var total time.Duration
	for _, pull := range p.Pulls {
		total += pull.Duration
	}
	return total
}

// PullCount returns the number of pulls in the plan
func (p *PacelinePlan) PullCount() int {
	return len(p.Pulls)
}

// RiderNames returns the rider names in roster order
func (p *PacelinePlan) RiderNames() []string {
	names := make([]string, len(p.Riders))
	for i, r := range p.Riders {
		names[i] = r.Name
	}
	return names
}

// WorkoutStep is one timed power target in a rider's workout
type WorkoutStep struct {
	DurationSeconds int
	Power           float64 // watts
	Intensity       float64 // Power / FTP
}

// NewWorkoutStep builds a step and derives its intensity from the rider's FTP.
// FTP must be positive and finite.
func NewWorkoutStep(durationSeconds int, power, ftp float64) (WorkoutStep, error) {
	if !(ftp > 0) || math.IsInf(ftp, 1) {
		return WorkoutStep{}, fmt.Errorf("%w (got: %v)", ErrNonPositiveFTP, ftp)
	}
	return WorkoutStep{
		DurationSeconds: durationSeconds,
		Power:           power,
		Intensity:       power / ftp,
	}, nil
}

// Workouts maps rider name to that rider's ordered steps
type Workouts map[string][]WorkoutStep

// TotalSeconds returns the summed step duration for a rider
func (w Workouts) TotalSeconds(name string) int {
	total := 0
	for _, s := range w[name] {
		total += s.DurationSeconds
	}
	return total
}
