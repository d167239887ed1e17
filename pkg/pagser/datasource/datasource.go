/*
Package datasource contains the backends pagser reads from.
A datasource refers to any component that provides access to data. pagser ships a SQL datasource
that serves the customer query handlers.
*/
package datasource

// Logger is the logging surface a datasource needs. logging.Logger satisfies it.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
}
