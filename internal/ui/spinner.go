package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner animates a single status line while a blocking call runs. The
// frames come from the same set the board uses, so both surfaces look alike.
type Spinner struct {
	out   io.Writer
	style spinner.Spinner
	label string

	mu   sync.Mutex
	done chan struct{}
	wg   sync.WaitGroup
}

// NewSpinner returns a stopped spinner that draws on out.
func NewSpinner(out io.Writer, label string) *Spinner {
	return &Spinner{out: out, style: spinner.Dot, label: label}
}

// Start begins drawing. Calling it on a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	s.done = make(chan struct{})

	s.wg.Add(1)
	go s.run(s.done)
}

func (s *Spinner) run(done <-chan struct{}) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.style.FPS)
	defer ticker.Stop()

	for frame := 0; ; frame = (frame + 1) % len(s.style.Frames) {
		fmt.Fprintf(s.out, "\r%s %s", StylePrimary.Render(s.style.Frames[frame]), s.label)
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

// Stop halts drawing and clears the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.mu.Lock()
	done := s.done
	s.done = nil
	s.mu.Unlock()
	if done == nil {
		return
	}

	close(done)
	s.wg.Wait()
	fmt.Fprint(s.out, "\r\033[K")
}

// WithSpinner runs fn while a spinner labelled label draws on out. When
// enabled is false fn runs without any output.
func WithSpinner(out io.Writer, label string, enabled bool, fn func() error) error {
	if !enabled {
		return fn()
	}
	s := NewSpinner(out, label)
	s.Start()
	defer s.Stop()
	return fn()
}
