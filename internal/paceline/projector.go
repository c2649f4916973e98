package paceline

import "fmt"

// Project regroups a pull sequence into one ordered workout per rider.
// Step k of a rider's workout corresponds to the k-th pull that rider rode in.
func Project(pulls []Pull) (Workouts, error) {
	workouts := make(Workouts)

	for _, pull := range pulls {
		durationSeconds := int(pull.Duration.Seconds())

		for _, pos := range pull.Positions {
			step, err := NewWorkoutStep(durationSeconds, float64(pos.TargetPower), pos.Rider.RiderData.FTP)
			if err != nil {
				return nil, fmt.Errorf("pull %d rider %q: %w", pull.PullNumber, pos.Rider.Name, err)
			}
			workouts[pos.Rider.Name] = append(workouts[pos.Rider.Name], step)
		}
	}

	return workouts, nil
}

// ProjectPlan projects the pulls of a composed plan
func ProjectPlan(plan *PacelinePlan) (Workouts, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan cannot be nil")
	}
	return Project(plan.Pulls)
}
