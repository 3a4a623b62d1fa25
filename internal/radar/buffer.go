package radar

import (
	"fmt"
	"sync"
	"time"

	"sweep-radar.klederson.com/internal/config"
)

// Buffer is a thread-safe, time-windowed store of live detections.
// Entries are kept in insertion order; anything whose alpha has reached
// zero is dropped on the next eviction.
type Buffer struct {
	mu         sync.Mutex
	items      []Detection
	maxRange   float64
	fade       time.Duration
	capacity   int
	sweepAngle int
}

// NewBuffer creates a buffer with the given admission range and fade time.
func NewBuffer(maxRange float64, fade time.Duration) (*Buffer, error) {
	if err := config.ValidateRange(maxRange); err != nil {
		return nil, err
	}
	if err := config.ValidateFade(fade); err != nil {
		return nil, err
	}
	return &Buffer{
		maxRange: maxRange,
		fade:     fade,
		capacity: config.MaxDetections,
	}, nil
}

// Insert records a sample. The sample becomes a detection only when
// 0 < distance <= maxRange; the sweep angle follows every in-domain
// angle so the beam tracks the sensor even without an echo.
// Returns true if a detection was stored.
func (b *Buffer) Insert(angle int, distance float64, now time.Time) bool {
	if !ValidAngle(angle) {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.sweepAngle = angle
	if !(distance > 0 && distance <= b.maxRange) {
		return false
	}

	b.dropExpiredPrefix(now)
	if len(b.items) >= b.capacity {
		b.items = b.items[len(b.items)-b.capacity+1:]
	}
	b.items = append(b.items, Detection{
		Angle:      angle,
		Distance:   distance,
		CapturedAt: now,
	})
	return true
}

// dropExpiredPrefix trims leading entries that have already faded.
// Caller must hold b.mu.
func (b *Buffer) dropExpiredPrefix(now time.Time) {
	i := 0
	for i < len(b.items) && alphaAt(b.items[i].CapturedAt, now, b.fade) <= 0 {
		i++
	}
	if i > 0 {
		b.items = compact(b.items[i:])
	}
}

// EvictExpired removes every detection whose alpha is zero at now.
// Returns the number of evicted detections.
func (b *Buffer) EvictExpired(now time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.items[:0]
	for _, d := range b.items {
		if alphaAt(d.CapturedAt, now, b.fade) > 0 {
			kept = append(kept, d)
		}
	}
	evicted := len(b.items) - len(kept)
	clear(b.items[len(kept):])
	b.items = compact(kept)
	return evicted
}

// compact copies s into a fresh slice once its backing array is mostly
// unused, so a long-running buffer never pins a large allocation.
func compact(s []Detection) []Detection {
	if cap(s) > 64 && len(s) < cap(s)/4 {
		out := make([]Detection, len(s), len(s)*2)
		copy(out, s)
		return out
	}
	return s
}

// Snapshot returns copies of the live detections in insertion order with
// their alpha computed at now. It does not modify the buffer.
func (b *Buffer) Snapshot(now time.Time) []Detection {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([]Detection, 0, len(b.items))
	for _, d := range b.items {
		a := alphaAt(d.CapturedAt, now, b.fade)
		if a <= 0 {
			continue
		}
		d.Alpha = a
		result = append(result, d)
	}
	return result
}

// Len returns the number of stored detections, expired or not.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// SweepAngle returns the last in-domain angle passed to Insert.
func (b *Buffer) SweepAngle() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sweepAngle
}

// MaxRange returns the admission ceiling.
func (b *Buffer) MaxRange() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.maxRange
}

// FadeDuration returns the fade window.
func (b *Buffer) FadeDuration() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fade
}

// SetMaxRange changes the admission ceiling for future samples. Stored
// detections are neither evicted nor rescaled.
func (b *Buffer) SetMaxRange(r float64) error {
	if err := config.ValidateRange(r); err != nil {
		return fmt.Errorf("set max range: %w", err)
	}
	b.mu.Lock()
	b.maxRange = r
	b.mu.Unlock()
	return nil
}

// SetFadeDuration changes the fade window. It applies to stored detections
// too, so shrinking it can expire them immediately.
func (b *Buffer) SetFadeDuration(d time.Duration) error {
	if err := config.ValidateFade(d); err != nil {
		return fmt.Errorf("set fade time: %w", err)
	}
	b.mu.Lock()
	b.fade = d
	b.mu.Unlock()
	return nil
}

// SetCapacity changes the hard cap on stored detections.
func (b *Buffer) SetCapacity(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", config.ErrInvalid, n)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.capacity = n
	if len(b.items) > n {
		b.items = compact(b.items[len(b.items)-n:])
	}
	return nil
}
