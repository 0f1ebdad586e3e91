package audit

import (
	"go.uber.org/zap"

	"github.com/clinidesk/clinic-scheduler/internal/logger"
)

type Event struct {
	ClinicID uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.ClinicID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			logger.Get().Error("audit write failed", zap.Error(err))
		}
	}
}

// Dispatch queues an event for the background writer. A nil dispatcher
// discards events, so callers never guard the call.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		// full queue drops audit rather than blocking the API
		logger.Get().Warn("audit queue full, dropping event",
			zap.String("action", ev.Action))
	}
}
