// Package logging provides structured logging for hactar-babel using slog.
//
// Every diagnostic the reconciler produces ("detected es2015", "installing
// babel-preset-react", "wrote babel config") is a slog record. The package
// supplies a colorized handler for terminals, a JSON option for machine
// consumption, and helpers to carry a logger through a context.Context.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//	})
//	ctx := logging.NewContext(context.Background(), logger)
//	logging.FromContext(ctx).Info("watching", "root", root)
//
// # Testing
//
// [ForTest] routes records through t.Log so they show up only on failure or
// with -v.
package logging
