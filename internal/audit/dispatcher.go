package audit

import "go.uber.org/zap"

type Event struct {
	SalonID  uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Sink recebe os eventos drenados da fila. A implementação padrão é o Logger
// gorm deste pacote.
type Sink interface {
	Log(
		salonID uint,
		userID *uint,
		action string,
		entity string,
		entityID *uint,
		metadata any,
	) error
}

type Dispatcher struct {
	logger Sink
	log    *zap.Logger
	queue  chan Event
}

func NewDispatcher(logger Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.SalonID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Warn("audit error", zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.log.Warn("audit queue full, dropping event")
	}
}
