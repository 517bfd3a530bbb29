// Package logger provides structured logging built on zerolog.
//
// Loggers are created from a Config (level, console or JSON format, output
// stream) and tagged with a component name. The HTTP layers log each request
// and response through this package so that log output has the same shape
// regardless of which transport engine is in use.
//
//	log := logger.New(&logger.Config{Level: "debug", Format: "json"}, "users-api")
//	log.Info("request sent", logger.Fields(logger.FieldMethod, "GET", logger.FieldURL, u))
package logger
