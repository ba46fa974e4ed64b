package transfer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
	"github.com/jhoicas/traslados-api/pkg/logger"
)

// Fulfiller es lo que el watcher necesita de la rutina de reposición
// (FulfillUseCase en producción).
type Fulfiller interface {
	Fulfill(ctx context.Context, backorderID string) (*FulfillOutcome, error)
}

// SweepStats resume un barrido del watcher.
type SweepStats struct {
	At        time.Time `json:"at"`
	Processed int       `json:"processed"`
	Settled   int       `json:"settled"`
	Moved     int       `json:"moved"`
	Failed    int       `json:"failed"`
}

// Watcher reintenta periódicamente los backorders abiertos contra el stock de
// origen, sin intervención humana. Cada backorder se procesa en su propia
// transacción: el fallo de uno no aborta el resto (se registra y se reintenta
// en el siguiente intervalo). El barrido es single-flight: si el anterior
// sigue en vuelo, el nuevo no ejecuta ninguna transacción.
type Watcher struct {
	fulfiller  Fulfiller
	backorders repository.BackorderRepository
	interval   time.Duration
	log        *logger.Logger

	busy   atomic.Bool
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup

	mu   sync.Mutex
	last SweepStats
}

// NewWatcher construye el watcher. backorders debe estar atado al pool (se
// usa fuera de transacción, solo para listar los abiertos).
func NewWatcher(fulfiller Fulfiller, backorders repository.BackorderRepository, interval time.Duration, log *logger.Logger) *Watcher {
	return &Watcher{
		fulfiller:  fulfiller,
		backorders: backorders,
		interval:   interval,
		stop:       make(chan struct{}),
		log:        log,
	}
}

// Start lanza el ciclo periódico en segundo plano.
func (w *Watcher) Start() {
	w.ticker = time.NewTicker(w.interval)
	w.wg.Add(1)
	go w.run()
	w.log.Info().Dur("interval", w.interval).Msg("watcher de backorders iniciado")
}

// Stop detiene el ciclo y espera a que termine el barrido en curso.
func (w *Watcher) Stop() {
	if w.ticker == nil {
		return
	}
	w.ticker.Stop()
	close(w.stop)
	w.wg.Wait()
	w.log.Info().Msg("watcher de backorders detenido")
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ticker.C:
			if _, err := w.Sweep(context.Background()); err != nil && err != domain.ErrSweepInProgress {
				w.log.Error().Err(err).Msg("barrido de backorders")
			}
		case <-w.stop:
			return
		}
	}
}

// Sweep ejecuta un barrido completo. Devuelve ErrSweepInProgress si otro
// barrido sigue en vuelo (no ejecuta ninguna transacción en ese caso) y se
// salta por completo cuando no hay backorders abiertos.
func (w *Watcher) Sweep(ctx context.Context) (SweepStats, error) {
	if !w.busy.CompareAndSwap(false, true) {
		return SweepStats{}, domain.ErrSweepInProgress
	}
	defer w.busy.Store(false)

	stats := SweepStats{At: time.Now()}

	open, err := w.backorders.ListOpen()
	if err != nil {
		return stats, err
	}
	if len(open) == 0 {
		return stats, nil
	}

	for _, bo := range open {
		outcome, err := w.fulfiller.Fulfill(ctx, bo.ID)
		if err != nil {
			// Un ítem fallido no detiene el barrido; queda para el siguiente ciclo.
			stats.Failed++
			w.log.Error().Err(err).Str("backorder_id", bo.ID).Msg("reposición de backorder")
			continue
		}
		stats.Processed++
		if outcome.Settled {
			stats.Settled++
			w.log.Info().Str("backorder_id", bo.ID).Msg("backorder saldado")
		} else if outcome.Moved {
			stats.Moved++
		}
	}

	w.mu.Lock()
	w.last = stats
	w.mu.Unlock()

	if stats.Settled > 0 || stats.Moved > 0 || stats.Failed > 0 {
		w.log.Info().
			Int("processed", stats.Processed).
			Int("settled", stats.Settled).
			Int("moved", stats.Moved).
			Int("failed", stats.Failed).
			Msg("barrido de backorders completado")
	}
	return stats, nil
}

// LastSweep devuelve las estadísticas del último barrido terminado.
func (w *Watcher) LastSweep() SweepStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// Busy indica si hay un barrido en vuelo.
func (w *Watcher) Busy() bool {
	return w.busy.Load()
}
