package paceline

import "fmt"

// ValidateRoster checks everything the rotation engine needs before it
// assigns a single position. FTP is not checked here: it is only needed
// once intensity is derived.
func ValidateRoster(riders []RiderPowerPlan, rotations int) error {
	var errs ValidationErrors

	if len(riders) == 0 {
		errs = append(errs, ValidationError{Field: "riders", Value: 0, Message: "roster must not be empty"})
	}
	if rotations < 1 {
		errs = append(errs, ValidationError{Field: "rotations", Value: rotations, Message: "must be at least 1"})
	}

	seen := make(map[string]bool, len(riders))
	for i, r := range riders {
		if r.Name == "" {
			errs = append(errs, ValidationError{Field: "name", Value: i, Message: "rider name must not be empty"})
		} else if seen[r.Name] {
			errs = append(errs, ValidationError{Rider: r.Name, Field: "name", Value: r.Name, Message: "rider names must be unique"})
		}
		seen[r.Name] = true

		if r.PullDuration <= 0 {
			errs = append(errs, ValidationError{Rider: r.Name, Field: "pull_duration", Value: r.PullDuration, Message: "must be positive"})
		}
		if len(r.PowerByPosition) == 0 {
			errs = append(errs, ValidationError{Rider: r.Name, Field: "power_by_position", Value: r.PowerByPosition, Message: "must have at least one entry"})
		}
		for pos, w := range r.PowerByPosition {
			if w <= 0 {
				errs = append(errs, ValidationError{Rider: r.Name, Field: "power_by_position", Value: w, Message: fmt.Sprintf("position %d power must be positive", pos)})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
