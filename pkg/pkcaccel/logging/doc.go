// Package logging is the logging facade of pkcaccel.
//
// Logger wraps the context-aware methods of log/slog. New binds it to a
// *slog.Logger (slog.Default() when nil) and Discard drops everything:
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	dev, err := pkcaccel.Open(pkcaccel.Config{Logger: logging.New(slog.New(handler))})
//
// Sessions log at Debug with their workarea sizes; failed operations log at
// Warn with the operation name and error kind. Key material is never logged;
// Redacted marks where a secret would otherwise appear:
//
//	log.Debug(ctx, "scalar drawn", logging.Op("ecdh.GenerateKeyPair"), logging.Redacted("d"))
package logging
