package source

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweep-radar.klederson.com/internal/config"
)

func seeded(seed int64) *Simulator {
	return NewSimulator(rand.New(rand.NewSource(seed)))
}

func TestSimulator_BouncesAtHorizons(t *testing.T) {
	s := seeded(1)

	angles := make([]int, 360)
	for i := range angles {
		angles[i] = s.Step().Angle
	}

	assert.Equal(t, 1, angles[0])
	assert.Equal(t, 180, angles[179])
	assert.Equal(t, 179, angles[180], "direction flips at 180")
	assert.Equal(t, 0, angles[359])
	assert.Equal(t, 1, s.Step().Angle, "direction flips at 0")
	for i := 1; i < len(angles); i++ {
		assert.Equal(t, 1, abs(angles[i]-angles[i-1]), "step %d", i)
	}
}

func TestSimulator_EchoFromObstacle(t *testing.T) {
	s := seeded(2)
	s.obstacles = []obstacle{{angle: 90, distance: 200, width: 10}}

	for _, start := range []int{79, 89, 99} {
		s.angle, s.direction = start, 1
		got := s.Step()
		assert.Equal(t, start+1, got.Angle)
		assert.GreaterOrEqual(t, got.Distance, 195.0)
		assert.LessOrEqual(t, got.Distance, 205.0)
		assert.Equal(t, math.Round(got.Distance), got.Distance)
	}
}

func TestSimulator_NearestObstacleWins(t *testing.T) {
	s := seeded(3)
	s.obstacles = []obstacle{
		{angle: 90, distance: 300, width: 20},
		{angle: 95, distance: 100, width: 20},
	}
	s.angle, s.direction = 89, 1

	got := s.Step()
	assert.GreaterOrEqual(t, got.Distance, 95.0)
	assert.LessOrEqual(t, got.Distance, 105.0)
}

func TestSimulator_NoiseFlooredAtZero(t *testing.T) {
	s := seeded(4)
	s.obstacles = []obstacle{{angle: 90, distance: 1, width: 10}}

	for i := 0; i < 200; i++ {
		s.angle, s.direction = 89, 1
		d := s.Step().Distance
		assert.GreaterOrEqual(t, d, 0.0)
		assert.LessOrEqual(t, d, 6.0)
	}
}

func TestSimulator_EmptyFieldReportsNoEchoOrSpurious(t *testing.T) {
	s := seeded(5)
	s.obstacles = nil

	spurious := 0
	for i := 0; i < 2000; i++ {
		d := s.Step().Distance
		if d == config.SimNoEcho {
			continue
		}
		spurious++
		assert.GreaterOrEqual(t, d, 100.0)
		assert.LessOrEqual(t, d, 399.0)
	}
	assert.Greater(t, spurious, 0)
	assert.Less(t, spurious, 300)
}

func TestSimulator_GeneratedObstacles(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		s := seeded(seed)
		s.RegenerateObstacles()
		require.GreaterOrEqual(t, len(s.obstacles), 5)
		require.LessOrEqual(t, len(s.obstacles), 9)
		for _, o := range s.obstacles {
			assert.True(t, o.angle >= 0 && o.angle <= 179, "angle %d", o.angle)
			assert.True(t, o.distance >= 50 && o.distance <= 349, "distance %d", o.distance)
			assert.True(t, o.width >= 10 && o.width <= 29, "width %d", o.width)
		}
	}
}

func TestSimulator_StartEmitsAndStop(t *testing.T) {
	s := seeded(6)
	require.NoError(t, s.SetScanSpeed(time.Millisecond))

	samples := make(chan Sample, 64)
	s.OnSample(func(x Sample) {
		select {
		case samples <- x:
		default:
		}
	})

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.Running())
	assert.Equal(t, 1, recv(t, samples).Angle, "start resets the sweep")
	require.NoError(t, s.Start(context.Background()))

	require.NoError(t, s.SetScanSpeed(2*time.Millisecond))
	recv(t, samples)

	s.Stop()
	assert.False(t, s.Running())
	s.Stop()
}

func TestSimulator_StopsWithContext(t *testing.T) {
	s := seeded(7)
	require.NoError(t, s.SetScanSpeed(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	steps := make(chan struct{}, 1024)
	s.OnSample(func(Sample) {
		select {
		case steps <- struct{}{}:
		default:
		}
	})
	require.NoError(t, s.Start(ctx))
	recv(t, steps)
	cancel()

	time.Sleep(20 * time.Millisecond)
	for len(steps) > 0 {
		<-steps
	}
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, steps)
}

func TestSimulator_RejectsBadScanSpeed(t *testing.T) {
	s := seeded(8)
	assert.ErrorIs(t, s.SetScanSpeed(0), config.ErrInvalid)
	assert.ErrorIs(t, s.SetScanSpeed(-time.Second), config.ErrInvalid)
}
