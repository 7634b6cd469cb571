// Package logging builds the slog loggers used by simpleconf-gen.
//
// Human output goes to stderr through [Handler], which colors levels and
// keys when stderr is a terminal. JSON output is the standard library's
// handler. [ForTest] routes a logger into the test log:
//
//	gen.NewGenerator(gen.Options{Logger: logging.ForTest(t)})
package logging
