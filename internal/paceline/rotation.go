package paceline

// ComposePulls builds the pull sequence for rotations full paceline cycles.
//
// The roster order is the starting paceline: riders[0] pulls first, and
// after every pull the puller drops to the back. The caller's slice is
// never modified; the engine works on its own copy and walks it with an
// index offset instead of rotating it in place.
func ComposePulls(riders []RiderPowerPlan, rotations int) ([]Pull, error) {
	if err := ValidateRoster(riders, rotations); err != nil {
		return nil, err
	}

	order := make([]RiderPowerPlan, len(riders))
	for i, r := range riders {
		order[i] = r.clone()
	}

	teamSize := len(order)
	totalPulls := rotations * teamSize
	pulls := make([]Pull, 0, totalPulls)

	for i := 0; i < totalPulls; i++ {
		pulling := i % teamSize

		pull := Pull{
			PullNumber: i + 1,
			Duration:   order[pulling].PullDuration,
			Positions:  make([]PacelinePosition, teamSize),
		}

		for riderIndex, rider := range order {
			position := RotationPosition(riderIndex, pulling, teamSize)
			power, err := rider.GetPowerAtPosition(position)
			if err != nil {
				return nil, err
			}
			pull.Positions[position] = PacelinePosition{
				Rider:          rider,
				PositionInPull: position,
				TargetPower:    power,
			}
		}

		pulls = append(pulls, pull)
	}

	return pulls, nil
}

// ComposePlan is ComposePulls wrapped with the roster copy and rotation count
func ComposePlan(riders []RiderPowerPlan, rotations int) (*PacelinePlan, error) {
	pulls, err := ComposePulls(riders, rotations)
	if err != nil {
		return nil, err
	}

	roster := make([]RiderPowerPlan, len(riders))
	for i, r := range riders {
		roster[i] = r.clone()
	}

	return &PacelinePlan{
		Riders:    roster,
		Rotations: rotations,
		Pulls:     pulls,
	}, nil
}
