package export

import (
	"fmt"
	"io"

	"github.com/lowaak/ttt-sim/internal/paceline"
)

// WritePullTable prints every pull with each rider's position and target
// power. Positions are printed 1-based.
func WritePullTable(w io.Writer, pulls []paceline.Pull) error {
	for _, pull := range pulls {
		if _, err := fmt.Fprintf(w, "Pull %d: Duration %d seconds\n", pull.PullNumber, int(pull.Duration.Seconds())); err != nil {
			return err
		}
		for _, pos := range pull.Positions {
			if _, err := fmt.Fprintf(w, "  Position %d: Rider %s, Target Power %d W\n",
				pos.PositionInPull+1, pos.Rider.Name, pos.TargetPower); err != nil {
				return err
			}
		}
	}
	return nil
}
