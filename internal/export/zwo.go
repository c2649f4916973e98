package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/lowaak/ttt-sim/internal/paceline"
)

// zwoFile is the Zwift workout (.zwo) document
type zwoFile struct {
	XMLName xml.Name   `xml:"workout_file"`
	Name    string     `xml:"name"`
	Workout zwoWorkout `xml:"workout"`
}

type zwoWorkout struct {
	Steps []zwoSteadyState `xml:"SteadyState"`
}

type zwoSteadyState struct {
	Duration int    `xml:"Duration,attr"`
	Power    string `xml:"Power,attr"` // intensity as a fraction of FTP, two decimals
}

// ZWO renders a rider's steps as a Zwift workout file
func ZWO(riderName string, steps []paceline.WorkoutStep) ([]byte, error) {
	doc := zwoFile{
		Name:    "TTT simulation for " + riderName,
		Workout: zwoWorkout{Steps: make([]zwoSteadyState, 0, len(steps))},
	}
	for _, s := range steps {
		doc.Workout.Steps = append(doc.Workout.Steps, zwoSteadyState{
			Duration: s.DurationSeconds,
			Power:    strconv.FormatFloat(s.Intensity, 'f', 2, 64),
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding workout for %q: %w", riderName, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
