package app

import "sweep-radar.klederson.com/internal/source"

// SampleLog keeps the most recent samples, oldest first.
type SampleLog struct {
	samples []source.Sample
	limit   int
}

// NewSampleLog creates a log holding at most limit samples.
func NewSampleLog(limit int) *SampleLog {
	return &SampleLog{
		samples: make([]source.Sample, 0, max(limit, 1)),
		limit:   max(limit, 1),
	}
}

// Add records s, dropping the oldest sample once the log is full.
func (l *SampleLog) Add(s source.Sample) {
	if len(l.samples) == l.limit {
		copy(l.samples, l.samples[1:])
		l.samples = l.samples[:l.limit-1]
	}
	l.samples = append(l.samples, s)
}

// Last returns the newest sample.
func (l *SampleLog) Last() (source.Sample, bool) {
	if len(l.samples) == 0 {
		return source.Sample{}, false
	}
	return l.samples[len(l.samples)-1], true
}

// Distances returns the logged distances, oldest first.
func (l *SampleLog) Distances() []float64 {
	if len(l.samples) == 0 {
		return nil
	}
	out := make([]float64, len(l.samples))
	for i, s := range l.samples {
		out[i] = s.Distance
	}
	return out
}
