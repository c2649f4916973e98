// Package roster loads team rosters (one RiderPowerPlan per rider) from
// CSV or YAML files.
package roster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lowaak/ttt-sim/internal/paceline"
)

// CSVPowerColumns is the number of power-by-position columns in a CSV row
const CSVPowerColumns = 4

// csvFields is name, weight, ftp, pull seconds plus the power columns
const csvFields = 4 + CSVPowerColumns

// ErrNoRiders is returned when a roster contains no rider rows
var ErrNoRiders = errors.New("no valid rider data found")

// maxPullSeconds is the longest pull a time.Duration can hold
const maxPullSeconds = math.MaxInt64 / int64(time.Second)

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// pullDuration converts whole seconds, rejecting values that overflow
func pullDuration(seconds int64) (time.Duration, bool) {
	if seconds > maxPullSeconds || seconds < -maxPullSeconds {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

// ParseError reports a malformed roster line
type ParseError struct {
	Line int // 1-based line number in the source
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ParseCSV reads rows of
//
//	name, weight, ftp, pullDurationSeconds, power@pos0, power@pos1, power@pos2, power@pos3
//
// Blank lines and lines starting with '#' are skipped. Extra trailing
// fields are ignored.
func ParseCSV(r io.Reader) ([]paceline.RiderPowerPlan, error) {
	var riders []paceline.RiderPowerPlan

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rider, err := parseCSVLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: err.Error()}
		}
		riders = append(riders, rider)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}

	if len(riders) == 0 {
		return nil, ErrNoRiders
	}
	return riders, nil
}

func parseCSVLine(line string) (paceline.RiderPowerPlan, error) {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < csvFields {
		return paceline.RiderPowerPlan{}, fmt.Errorf("invalid CSV line (expected at least %d fields): %s", csvFields, line)
	}

	name := parts[0]

	weight, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || !isFinite(weight) {
		return paceline.RiderPowerPlan{}, fmt.Errorf("invalid weight value: %s", parts[1])
	}

	ftp, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || !isFinite(ftp) {
		return paceline.RiderPowerPlan{}, fmt.Errorf("invalid FTP value: %s", parts[2])
	}

	pullSeconds, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return paceline.RiderPowerPlan{}, fmt.Errorf("invalid PullDuration value: %s", parts[3])
	}
	pull, ok := pullDuration(pullSeconds)
	if !ok {
		return paceline.RiderPowerPlan{}, fmt.Errorf("invalid PullDuration value: %s", parts[3])
	}

	powers := make([]int, CSVPowerColumns)
	for i := range powers {
		powers[i], err = strconv.Atoi(parts[4+i])
		if err != nil {
			return paceline.RiderPowerPlan{}, fmt.Errorf("invalid PowerByPosition[%d] value: %s", i, parts[4+i])
		}
	}

	return paceline.RiderPowerPlan{
		Name:            name,
		PullDuration:    pull,
		PowerByPosition: powers,
		RiderData: paceline.RiderData{
			FTP:    ftp,
			Weight: weight,
		},
	}, nil
}
