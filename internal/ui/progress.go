package ui

import (
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner shows an indeterminate progress indicator while a blocking call
// such as the version probe runs. The bar animates itself; nothing outside
// the progressbar package touches it between Start and Stop.
type Spinner struct {
	w           io.Writer
	description string
	enabled     bool

	mu    sync.Mutex
	bar   *progressbar.ProgressBar
	start sync.Once
	stop  sync.Once
}

// NewSpinner creates a spinner writing to w. A disabled spinner renders
// nothing but is still safe to Start and Stop.
func NewSpinner(w io.Writer, description string, enabled bool) *Spinner {
	return &Spinner{
		w:           w,
		description: description,
		enabled:     enabled,
	}
}

// Start draws the spinner and lets it animate until Stop is called
func (s *Spinner) Start() {
	s.start.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		// The blank render sets the bar's start time before its animation
		// goroutine is launched, so that goroutine never observes a write.
		s.bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(s.w),
			progressbar.OptionSetDescription(s.description),
			progressbar.OptionSetWidth(10),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetSpinnerChangeInterval(spinnerInterval),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetVisibility(s.enabled),
		)
	})
}

// Stop clears the spinner line and ends the animation. Safe to call more
// than once, and before Start.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.bar != nil {
			_ = s.bar.Finish()
		}
	})
}

// Describe changes the spinner description
func (s *Spinner) Describe(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.description = description
	if s.bar != nil {
		s.bar.Describe(description)
	}
}
