// Package cli provides flag-value parsing and validation shared by the
// repstream subcommands.
package cli

import (
	"fmt"

	"github.com/marinocj/repstream/internal/axis"
	"github.com/marinocj/repstream/internal/pipeline"
)

// ParseMode maps an --exercise flag value to a pipeline mode.
func ParseMode(s string) (pipeline.Mode, error) {
	switch s {
	case "pushup":
		return pipeline.ModePushup, nil
	case "squat":
		return pipeline.ModeSquat, nil
	case "axis":
		return pipeline.ModeAxis, nil
	default:
		return 0, fmt.Errorf("unknown exercise %q (want pushup, squat or axis)", s)
	}
}

// ParseHand maps a --hand flag value to the tracked wrist.
func ParseHand(s string) (axis.Hand, error) {
	switch s {
	case "left":
		return axis.LeftHand, nil
	case "right":
		return axis.RightHand, nil
	default:
		return 0, fmt.Errorf("unknown hand %q (want left or right)", s)
	}
}
