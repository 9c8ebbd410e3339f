// Package logger builds the service's *slog.Logger.
//
// New applies functional options on top of production defaults (JSON, info
// level, stdout) and wraps the chosen handler in LogHandlerDecorator, which
// runs every registered ContextExtractor on each record. The request and
// tenant packages expose extractors so that request_id and tenant_id end up
// on every line logged with a request context:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.Name),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			tenant.LoggerExtractor(),
//		),
//	)
//
//	log.WarnContext(ctx, "privileged boundary unavailable",
//		logger.Operation(op),
//		logger.Error(err),
//	)
//
// Attribute helpers keep key names consistent. Error and Errors return an
// empty Attr for nil errors, which slog drops.
package logger
