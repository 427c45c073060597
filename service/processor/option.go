package processor

import (
	"log/slog"

	"github.com/gbroques/process-scheduling/model/dispatch"
	"github.com/gbroques/process-scheduling/service/messaging"
)

// Option configures the worker service.
type Option func(*Service)

// WithReportQueue sets the queue turn reports are published to.
func WithReportQueue(queue messaging.Queue[dispatch.Report]) Option {
	return func(s *Service) {
		s.reports = queue
	}
}

// WithDispatchSlot sets the shared record naming the running unit.
func WithDispatchSlot(slot *dispatch.Slot) Option {
	return func(s *Service) {
		s.slot = slot
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithConfig sets the configuration for the service
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}
