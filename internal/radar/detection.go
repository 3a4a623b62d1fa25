package radar

import "time"

const (
	MinAngle = 0
	MaxAngle = 180
)

// Detection is one admitted rangefinder sample.
type Detection struct {
	Angle      int       // Degrees, 0=left horizon, 90=straight ahead, 180=right horizon
	Distance   float64   // Same unit as the configured max range
	CapturedAt time.Time // Monotonic insertion time
	Alpha      float64   // Visibility in (0, 1], computed when the snapshot is taken
}

// ValidAngle reports whether angle lies on the forward half circle.
func ValidAngle(angle int) bool {
	return angle >= MinAngle && angle <= MaxAngle
}

// alphaAt returns the linear fade of a detection captured at capturedAt,
// 1 at capture and 0 once fade has elapsed.
func alphaAt(capturedAt, now time.Time, fade time.Duration) float64 {
	age := now.Sub(capturedAt)
	if age <= 0 {
		return 1
	}
	a := 1 - float64(age)/float64(fade)
	if a < 0 {
		return 0
	}
	return a
}
