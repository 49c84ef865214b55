package worker

import (
	"github.com/spec-kit/daily-pulse/internal/service"
)

// StartEventWorkers registers the event subscribers.
func StartEventWorkers(counters *service.CounterService, audit *service.AuditService) {
	if counters != nil {
		counters.RegisterHandlers()
	}
	if audit != nil {
		audit.RegisterHandlers()
	}
}
