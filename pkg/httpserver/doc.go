// Package httpserver runs the HTTP API with graceful shutdown and exposes
// liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithOnShutdown(func(context.Context) { pool.Close() }),
//	)
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	err := srv.Run(ctx, router)
//
// Readiness takes named checks; the service registers database
// connectivity and a check that row security is still enabled on the
// tenant tables, so an instance never reports ready against a database
// whose isolation backstop was switched off.
package httpserver
