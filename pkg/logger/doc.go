// Package logger builds *slog.Logger instances for the client and its tools.
//
// New applies functional options (level, format, output, static attributes,
// context extractors) and wraps the resulting handler in a decorator that adds
// request-scoped attributes, such as the request ID, at log time:
//
//	log := logger.New(
//		logger.WithConfig(cfg),
//		logger.WithAttr(logger.Component("limsctl")),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
// The attribute helpers (Error, Username, StatusCode and friends) keep key names
// consistent across packages. Credentials are never passed to them.
package logger
