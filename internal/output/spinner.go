package output

import (
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

const tickInterval = 120 * time.Millisecond

// Spinner shows indeterminate progress on stderr while a scan's network
// call is in flight.
type Spinner struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
	once sync.Once
}

// StartSpinner starts a spinner with the given description. When enabled is
// false (quiet runs, JSON log output) the returned spinner is inert and Stop
// is still safe to call.
func StartSpinner(description string, enabled bool) *Spinner {
	if !enabled {
		return &Spinner{}
	}

	s := &Spinner{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		),
		done: make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *Spinner) loop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			_ = s.bar.Add(1)
		}
	}
}

// Stop clears the spinner. Safe to call more than once.
func (s *Spinner) Stop() {
	if s.bar == nil {
		return
	}
	s.once.Do(func() {
		close(s.done)
		_ = s.bar.Finish()
	})
}
