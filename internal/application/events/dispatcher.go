package events

import (
	"sync"
	"time"

	"github.com/jhoicas/Comercio-api/pkg/logger"
)

// Dispatcher desacopla la publicación de eventos del camino transaccional:
// los casos de uso encolan con Emit tras el commit y un worker aparte publica.
// Entrega al menos una vez; si el transporte falla se registra y se descarta,
// nunca se reintenta bloqueando operaciones de negocio.
type Dispatcher struct {
	publisher Publisher
	log       *logger.Logger
	ch        chan Event
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher construye el despachador con un buffer acotado.
func NewDispatcher(publisher Publisher, log *logger.Logger, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Dispatcher{
		publisher: publisher,
		log:       log,
		ch:        make(chan Event, buffer),
	}
}

// Start arranca el worker que consume la cola y publica.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for ev := range d.ch {
			if d.publisher == nil {
				continue
			}
			if err := d.publisher.Publish(ev); err != nil {
				d.log.Warn().Err(err).Str("type", ev.Type).Msg("evento de notificación descartado")
			}
		}
	}()
}

// Emit encola sin bloquear. Si el buffer está lleno el evento se descarta y
// se registra: las notificaciones no pueden frenar el negocio.
func (d *Dispatcher) Emit(eventType string, data map[string]any) {
	ev := Event{Type: eventType, OccurredAt: time.Now(), Data: data}
	select {
	case d.ch <- ev:
	default:
		d.log.Warn().Str("type", ev.Type).Msg("buffer de eventos lleno, evento descartado")
	}
}

// Close cierra la cola y espera a que el worker drene lo pendiente.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.ch) })
	d.wg.Wait()
}
