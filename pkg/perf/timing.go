// Package perf is an opt-in timing log for layout and bring-up passes.
// Set LEDGE_PERF=1 to route spans to ledge-perf.log in the temp dir.
package perf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu  sync.Mutex
	out io.Writer
)

func init() {
	if os.Getenv("LEDGE_PERF") != "1" {
		return
	}
	f, err := os.OpenFile(filepath.Join(os.TempDir(), "ledge-perf.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	out = f
}

// Span times one named pass. Call the returned func when the pass ends,
// typically via defer Span("redraw_bar")().
func Span(name string) func() {
	if out == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		write("%s %v", name, time.Since(start))
	}
}

// Log writes one formatted line to the perf log.
func Log(format string, args ...interface{}) {
	if out == nil {
		return
	}
	write(format, args...)
}

func write(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, time.Now().Format("15:04:05.000")+" "+format+"\n", args...)
}
