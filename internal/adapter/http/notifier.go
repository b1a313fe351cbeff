package http

import (
	"context"
	"log"
)

// LogNotifier is the default NotificationSink: events are logged and the
// real delivery channel (email/SMS) subscribes downstream. Fire-and-forget
// by contract, so there is nothing to return.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (LogNotifier) Notify(_ context.Context, applicationID, event string) {
	log.Printf("notify: %s %s", event, applicationID)
}
