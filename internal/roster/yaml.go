package roster

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/lowaak/ttt-sim/internal/paceline"
)

type yamlRoster struct {
	Riders []yamlRider `yaml:"riders"`
}

type yamlRider struct {
	Name            string  `yaml:"name"`
	Weight          float64 `yaml:"weight"`
	FTP             float64 `yaml:"ftp"`
	PullSeconds     int64   `yaml:"pull_seconds"`
	PowerByPosition []int   `yaml:"power_by_position"`
}

// ParseYAML reads a roster of the form
//
//	riders:
//	  - name: Alice
//	    weight: 62
//	    ftp: 260
//	    pull_seconds: 30
//	    power_by_position: [300, 260, 240, 220, 210]
//
// Unlike the CSV format the power table may have any non-empty length.
func ParseYAML(r io.Reader) ([]paceline.RiderPowerPlan, error) {
	var doc yamlRoster
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ErrNoRiders
		}
		return nil, fmt.Errorf("parsing roster: %w", err)
	}

	if len(doc.Riders) == 0 {
		return nil, ErrNoRiders
	}

	riders := make([]paceline.RiderPowerPlan, 0, len(doc.Riders))
	for _, yr := range doc.Riders {
		if !isFinite(yr.Weight) {
			return nil, fmt.Errorf("rider %q: invalid weight value: %v", yr.Name, yr.Weight)
		}
		if !isFinite(yr.FTP) {
			return nil, fmt.Errorf("rider %q: invalid FTP value: %v", yr.Name, yr.FTP)
		}
		pull, ok := pullDuration(yr.PullSeconds)
		if !ok {
			return nil, fmt.Errorf("rider %q: invalid PullDuration value: %d", yr.Name, yr.PullSeconds)
		}
		riders = append(riders, paceline.RiderPowerPlan{
			Name:            yr.Name,
			PullDuration:    pull,
			PowerByPosition: yr.PowerByPosition,
			RiderData: paceline.RiderData{
				FTP:    yr.FTP,
				Weight: yr.Weight,
			},
		})
	}
	return riders, nil
}
