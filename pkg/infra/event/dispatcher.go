package event

import (
	log "github.com/sirupsen/logrus"

	"storefront/pkg/domain/service"
)

// NewLogDispatcher returns a dispatcher that records domain events in the
// structured log. There is no broker in this deployment; the log is the
// event sink.
func NewLogDispatcher() service.EventDispatcher {
	return &logDispatcher{}
}

type logDispatcher struct{}

func (d *logDispatcher) Dispatch(e service.Event) error {
	log.WithFields(log.Fields{
		"event":   e.Type(),
		"payload": e,
	}).Info("domain event")
	return nil
}
