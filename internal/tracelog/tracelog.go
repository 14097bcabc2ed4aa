// Package tracelog provides an opt-in, logrus-backed trace of revision
// resolution and object-store steps for the --verbose CLI flag. It is an
// ambient diagnostic, not part of the read-side contract: with verbose
// mode off, Step is a no-op.
package tracelog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Tracer emits structured trace lines while --verbose is set.
type Tracer struct {
	enabled bool
	log     *logrus.Logger
}

// New returns a Tracer. When enabled is false Step is a no-op.
func New(enabled bool) *Tracer {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	if enabled {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.PanicLevel)
	}
	return &Tracer{enabled: enabled, log: l}
}

// AddHook attaches a logrus hook to the underlying logger, mainly for
// tests that want to assert on emitted steps without parsing stderr.
func (t *Tracer) AddHook(hook logrus.Hook) {
	t.log.AddHook(hook)
}

// Step logs one resolution or decode step with optional structured
// fields. A nil Tracer is a valid no-op receiver, so callers that
// don't care about tracing can pass nil instead of constructing a
// disabled Tracer.
func (t *Tracer) Step(msg string, fields map[string]interface{}) {
	if t == nil || !t.enabled {
		return
	}
	t.log.WithFields(fields).Debug(msg)
}
