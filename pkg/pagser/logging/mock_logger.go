package logging

// NewMockLogger returns a logger that writes plain JSON to whatever os.Stdout and os.Stderr
// are at the time of each call, so tests can capture and assert on the output.
func NewMockLogger(level Level) Logger {
	l := &logger{}
	l.level.Store(int32(level))

	return l
}
