package cmd

import (
	"fmt"
	"os"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"golang.org/x/term"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// startSpinner shows an inline spinner followed by text on w until the
// returned function is called. Nothing is drawn when w is not a terminal.
func startSpinner(w *os.File, text string) func() {
	if !term.IsTerminal(int(w.Fd())) {
		return func() {}
	}
	return startInlineSpinner(w, text, spinnerFrames, 120*time.Millisecond)
}

// startInlineSpinner animates frames followed by text on a single line. The
// cursor is hidden while it runs and the line is cleared when it stops.
func startInlineSpinner(w *os.File, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	cursor.Hide()
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], text)
				i++
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			cursor.Show()
		})
	}
}
