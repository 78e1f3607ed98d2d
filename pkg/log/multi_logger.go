package log

// MultiLogger fans each event out to several sinks, typically a trace
// file plus a console echo. Nil sinks are dropped at construction so
// callers can pass optional destinations unconditionally.
type MultiLogger struct {
	sinks []Logger
}

// NewMultiLogger creates a MultiLogger over the non-nil sinks.
func NewMultiLogger(sinks ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Log forwards the event to every sink in registration order.
func (m *MultiLogger) Log(event Event) {
	for _, s := range m.sinks {
		s.Log(event)
	}
}

var _ Logger = (*MultiLogger)(nil)
