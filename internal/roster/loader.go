package roster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lowaak/ttt-sim/internal/paceline"
)

// LoadFile reads a roster, choosing the format from the file extension
func LoadFile(path string) ([]paceline.RiderPowerPlan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return ParseCSV(f)
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return nil, fmt.Errorf("unsupported roster format %q (want .csv, .yaml or .yml)", ext)
	}
}
