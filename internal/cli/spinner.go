package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates one status line while the pipeline runs. Each stage
// replaces the message in place, so loading, layout and rendering share a
// line. It stops on its own when ctx is cancelled.
type spinner struct {
	out    io.Writer
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	mu      sync.Mutex
	message string
	widest  int
}

// startSpinner starts drawing message on out.
func startSpinner(ctx context.Context, out io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{out: out, ctx: ctx, cancel: cancel}
	s.stage(message)
	s.wg.Add(1)
	go s.run()
	return s
}

func (s *spinner) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			fmt.Fprintf(s.out, "\r%s %s", styleAccent.Render(spinnerFrames[i%len(spinnerFrames)]), styleMuted.Render(s.message))
			s.mu.Unlock()
		}
	}
}

// stage replaces the message shown by the spinner.
func (s *spinner) stage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(message) > s.widest {
		s.widest = len(message)
	}
	// Pad over the previous message; frames only rewrite their own width.
	s.message = message + strings.Repeat(" ", s.widest-len(message))
}

// stop ends the animation and clears the line. Safe to call more than once.
func (s *spinner) stop() {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.widest+2))
	})
}
