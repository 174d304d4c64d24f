package workers

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/repository"
)

// CartExpirationWorker marks stale customer carts as expired on an interval
type CartExpirationWorker struct {
	carts    *repository.CartsRepository
	interval time.Duration
	logger   *logrus.Entry

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	doneChan chan struct{}

	totalRuns    int64
	totalExpired int64
	lastRunAt    time.Time
}

func NewCartExpirationWorker(carts *repository.CartsRepository, interval time.Duration, logger *logrus.Logger) *CartExpirationWorker {
	return &CartExpirationWorker{
		carts:    carts,
		interval: interval,
		logger:   logger.WithField("component", "cart-expiration-worker"),
	}
}

// Start launches the expiration loop
func (w *CartExpirationWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.doneChan = make(chan struct{})

	go w.run()
	w.logger.WithField("interval", w.interval.String()).Info("Cart expiration worker started")
}

// Stop signals the loop and waits for it to finish
func (w *CartExpirationWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopChan)
	done := w.doneChan
	w.mu.Unlock()

	<-done
	w.logger.Info("Cart expiration worker stopped")
}

func (w *CartExpirationWorker) run() {
	defer close(w.doneChan)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.expire()
		}
	}
}

func (w *CartExpirationWorker) expire() {
	expired, err := w.carts.ExpireStaleCarts()
	w.mu.Lock()
	w.totalRuns++
	w.totalExpired += expired
	w.lastRunAt = time.Now()
	w.mu.Unlock()

	if err != nil {
		w.logger.WithError(err).Error("Cart expiration cycle failed")
		return
	}
	if expired > 0 {
		w.logger.WithField("expired", expired).Info("Expired stale carts")
	}
}

// Stats reports worker counters for the health endpoint
func (w *CartExpirationWorker) Stats() map[string]interface{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return map[string]interface{}{
		"running":      w.running,
		"totalRuns":    w.totalRuns,
		"totalExpired": w.totalExpired,
		"lastRunAt":    w.lastRunAt,
	}
}
