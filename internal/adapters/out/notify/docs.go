// Package notify holds the generic notification sinks: a structured-log sink,
// a fan-out that feeds several sinks, and an asynchronous dispatcher that keeps
// delivery off the request path.
//
// A typical wiring is
//
//	sink := notify.NewAsync(notify.Fanout{notify.NewLog(logger), hub, mailer}, 256, 2, logger)
//	sink.Start()
//	defer sink.Stop()
//
// Handlers only ever see ports.Notifier.
package notify
