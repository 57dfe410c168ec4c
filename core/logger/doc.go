// Package logger builds slog loggers and provides attribute helpers.
//
//	log := logger.New(
//		logger.WithDevelopment("webdemo"),
//		logger.WithContextExtractors(requestIDFromContext),
//	)
//	log.InfoContext(ctx, "request handled",
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.StatusCode(200),
//	)
//
// Without WithJSONFormatter or WithTextFormatter the format depends on the
// output: text when it is a terminal, JSON otherwise (detected with
// go-isatty). WithDevelopment selects text at debug level and WithProduction
// JSON at info level; both tag records with the service name.
//
// Category attaches a named category to a logger so messages can be grouped
// by their logical source:
//
//	custom := log.With(logger.Category("CustomCategory"))
package logger
