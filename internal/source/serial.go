package source

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"go.bug.st/serial"
)

// Opener opens the port at path. It is swapped out in tests.
type Opener func(path string, mode *serial.Mode) (io.ReadCloser, error)

func openPort(path string, mode *serial.Mode) (io.ReadCloser, error) {
	return serial.Open(path, mode)
}

// Serial reads samples from a rangefinder attached to a serial port.
type Serial struct {
	path string
	opts PortOptions
	open Opener

	mu       sync.Mutex
	port     io.ReadCloser
	cancel   context.CancelFunc
	onSample func(Sample)
	onStatus func(bool)
}

// NewSerial creates a serial source for the port at path.
func NewSerial(path string, opts PortOptions) *Serial {
	return &Serial{path: path, opts: opts, open: openPort}
}

// Path returns the configured device path.
func (s *Serial) Path() string { return s.path }

// OnSample registers the sample callback.
func (s *Serial) OnSample(fn func(Sample)) {
	s.mu.Lock()
	s.onSample = fn
	s.mu.Unlock()
}

// OnStatusChange registers a callback told about connects and disconnects.
func (s *Serial) OnStatusChange(fn func(connected bool)) {
	s.mu.Lock()
	s.onStatus = fn
	s.mu.Unlock()
}

// Connected reports whether the port is open.
func (s *Serial) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port != nil
}

// Start opens the port and reads from it in a goroutine until Stop is
// called, ctx is cancelled, or the port fails. Starting a connected source
// does nothing.
func (s *Serial) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.port != nil {
		s.mu.Unlock()
		return nil
	}

	mode, err := s.opts.SerialMode()
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("serial port %q: %w", s.path, err)
	}
	port, err := s.open(s.path, mode)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to open serial port %q: %w", s.path, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	s.port = port
	s.cancel = cancel
	status := s.onStatus
	s.mu.Unlock()

	if status != nil {
		status(true)
	}
	go s.read(ctx, port)
	return nil
}

func (s *Serial) read(ctx context.Context, port io.ReadCloser) {
	err := ReadLines(ctx, port, s.emit)
	if err != nil && ctx.Err() == nil {
		log.Printf("source: serial port %s: %v", s.path, err)
	}
	s.release(port)
}

func (s *Serial) emit(sample Sample) {
	s.mu.Lock()
	fn := s.onSample
	s.mu.Unlock()
	if fn != nil {
		fn(sample)
	}
}

// release closes port and reports the disconnect, once per connection.
func (s *Serial) release(port io.ReadCloser) {
	s.mu.Lock()
	if s.port != port {
		s.mu.Unlock()
		return
	}
	s.port = nil
	s.cancel()
	s.cancel = nil
	status := s.onStatus
	s.mu.Unlock()

	if err := port.Close(); err != nil {
		log.Printf("source: closing %s: %v", s.path, err)
	}
	if status != nil {
		status(false)
	}
}

// Stop closes the port. The disconnect is reported through the status
// callback. Stop does not wait for the reader to exit.
func (s *Serial) Stop() {
	s.mu.Lock()
	port := s.port
	s.mu.Unlock()
	if port != nil {
		s.release(port)
	}
}

// ListPorts returns the serial ports present on the system.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}
