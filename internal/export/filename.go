package export

import (
	"fmt"
	"strings"
)

const fileNameSuffix = "_TTT_Workout"

// invalidFileNameChars covers what Windows, macOS and Linux reject in a file name
const invalidFileNameChars = `/\:*?"<>|`

func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(invalidFileNameChars, r) {
			return '_'
		}
		return r
	}, name)
}

// fileStems returns one sanitised stem per rider name. Names that sanitise to
// the same stem, ignoring case, get _2, _3 and so on in roster order so no
// rider overwrites another's files.
func fileStems(names []string) []string {
	stems := make([]string, len(names))
	taken := make(map[string]bool, len(names))
	for i, name := range names {
		base := sanitizeFileName(name)
		stem := base
		for n := 2; taken[strings.ToLower(stem)]; n++ {
			stem = fmt.Sprintf("%s_%d", base, n)
		}
		taken[strings.ToLower(stem)] = true
		stems[i] = stem
	}
	return stems
}

func workoutFile(stem, ext string) string {
	return fmt.Sprintf("%s%s.%s", stem, fileNameSuffix, ext)
}

// WorkoutFileName returns the .zwo file name for a rider
func WorkoutFileName(riderName string) string {
	return workoutFile(sanitizeFileName(riderName), "zwo")
}

// WorkoutImageFileName returns the .png chart file name for a rider
func WorkoutImageFileName(riderName string) string {
	return workoutFile(sanitizeFileName(riderName), "png")
}
