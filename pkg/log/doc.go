// Package log provides structured logging for ulidkit's command layer and
// stream jobs. The core codec, generator, and validator are pure and never
// log; loggers are constructed at the edge and passed down explicitly — there
// is no package-level default logger.
//
// Usage
//
//	logger := log.NewLogger(
//		log.WithLevel(log.DebugLevel),
//		log.WithFormatter(&log.TextFormatter{}),
//	)
//	logger.Info("stream job finished",
//		log.Str("op", "validate"),
//		log.Int("processed", 5000),
//	)
package log
