// Package logging defines the diagnostics sink used by configuration loaders.
//
// Loaders never fail a render: they report what went wrong through a Logger
// and fall back to defaults. The default sink forwards to klog.
package logging

import (
	"fmt"
	"sync"

	"k8s.io/klog/v2"
)

// Logger receives warning-level diagnostics.
type Logger interface {
	Warningf(format string, args ...any)
}

type klogLogger struct{}

func (klogLogger) Warningf(format string, args ...any) {
	klog.Warningf(format, args...)
}

// Klog returns a Logger backed by klog.
func Klog() Logger {
	return klogLogger{}
}

type discard struct{}

func (discard) Warningf(string, ...any) {}

// Discard drops every message.
var Discard Logger = discard{}

// OrDefault returns l, or the klog-backed logger when l is nil.
func OrDefault(l Logger) Logger {
	if l == nil {
		return Klog()
	}
	return l
}

// Recorder keeps formatted messages in memory. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

// Warningf records the formatted message.
func (r *Recorder) Warningf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}
