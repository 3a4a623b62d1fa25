package source

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"

	"sweep-radar.klederson.com/internal/config"
)

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

type pipePort struct {
	opened int
	path   string
	mode   *serial.Mode
	r      *io.PipeReader
	w      *io.PipeWriter
}

func newPipeSerial(t *testing.T, opts PortOptions) (*Serial, *pipePort, chan Sample, chan bool) {
	t.Helper()
	pp := &pipePort{}
	pp.r, pp.w = io.Pipe()
	t.Cleanup(func() { pp.w.Close() })

	s := NewSerial("/dev/ttyTEST0", opts)
	s.open = func(path string, mode *serial.Mode) (io.ReadCloser, error) {
		pp.opened++
		pp.path, pp.mode = path, mode
		return pp.r, nil
	}

	samples := make(chan Sample, 16)
	status := make(chan bool, 4)
	s.OnSample(func(x Sample) { samples <- x })
	s.OnStatusChange(func(c bool) { status <- c })
	return s, pp, samples, status
}

func TestSerial_ReadsSamplesUntilStopped(t *testing.T) {
	s, pp, samples, status := newPipeSerial(t, PortOptions{})

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, recv(t, status))
	assert.True(t, s.Connected())
	assert.Equal(t, "/dev/ttyTEST0", pp.path)
	assert.Equal(t, 9600, pp.mode.BaudRate)

	go func() { _, _ = pp.w.Write([]byte("90,245\nnoise\n181,1\n10, 20\n")) }()
	assert.Equal(t, Sample{Angle: 90, Distance: 245}, recv(t, samples))
	assert.Equal(t, Sample{Angle: 10, Distance: 20}, recv(t, samples))

	s.Stop()
	assert.False(t, recv(t, status))
	assert.False(t, s.Connected())

	s.Stop()
	select {
	case c := <-status:
		t.Fatalf("unexpected second status %v", c)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSerial_DeviceEOFDisconnects(t *testing.T) {
	s, pp, _, status := newPipeSerial(t, PortOptions{})

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, recv(t, status))

	require.NoError(t, pp.w.Close())
	assert.False(t, recv(t, status))
	assert.False(t, s.Connected())
}

func TestSerial_ContextCancelDisconnects(t *testing.T) {
	s, pp, samples, status := newPipeSerial(t, PortOptions{})
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	assert.True(t, recv(t, status))

	cancel()
	go func() { _, _ = pp.w.Write([]byte("90,245\n")) }()
	assert.False(t, recv(t, status))
	assert.Empty(t, samples)
}

func TestSerial_StartTwiceOpensOnce(t *testing.T) {
	s, pp, _, status := newPipeSerial(t, PortOptions{})

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, 1, pp.opened)
	assert.True(t, recv(t, status))
	s.Stop()
}

func TestSerial_OpenFailure(t *testing.T) {
	noDevice := errors.New("no such device")
	s := NewSerial("/dev/ttyMISSING", PortOptions{})
	s.open = func(string, *serial.Mode) (io.ReadCloser, error) { return nil, noDevice }
	called := false
	s.OnStatusChange(func(bool) { called = true })

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, noDevice)
	assert.Contains(t, err.Error(), `failed to open serial port "/dev/ttyMISSING"`)
	assert.False(t, s.Connected())
	assert.False(t, called)
}

func TestSerial_InvalidOptions(t *testing.T) {
	s, pp, _, _ := newPipeSerial(t, PortOptions{DataBits: 9})

	err := s.Start(context.Background())
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Zero(t, pp.opened)
}
