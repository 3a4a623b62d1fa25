package source

import (
	"math"
	"strconv"
	"strings"

	"sweep-radar.klederson.com/internal/radar"
)

// ParseLine decodes an "<angle>,<distance>" record such as "90,245".
// Surrounding whitespace is ignored. Lines that are malformed, carry an
// angle outside [0,180] or a negative distance report ok=false.
func ParseLine(line string) (Sample, bool) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 2 {
		return Sample{}, false
	}

	angle, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || !radar.ValidAngle(angle) {
		return Sample{}, false
	}

	distance, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		return Sample{}, false
	}

	return Sample{Angle: angle, Distance: distance}, true
}
