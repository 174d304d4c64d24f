package workers

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/services"
)

// ReminderWorker periodically dispatches due WhatsApp payment reminders
type ReminderWorker struct {
	reminders *services.ReminderService
	interval  time.Duration
	batchSize int
	logger    *logrus.Entry

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	doneChan chan struct{}

	totalRuns int64
	totalSent int64
	lastRunAt time.Time
}

func NewReminderWorker(reminders *services.ReminderService, interval time.Duration, logger *logrus.Logger) *ReminderWorker {
	return &ReminderWorker{
		reminders: reminders,
		interval:  interval,
		batchSize: 50,
		logger:    logger.WithField("component", "reminder-worker"),
	}
}

// Start launches the dispatch loop
func (w *ReminderWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.doneChan = make(chan struct{})

	go w.run()
	w.logger.WithField("interval", w.interval.String()).Info("Reminder worker started")
}

// Stop signals the loop and waits for it to finish
func (w *ReminderWorker) Stop() {
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
	w.logger.Info("Reminder worker stopped")
}

func (w *ReminderWorker) run() {
	defer close(w.doneChan)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.dispatch()
		}
	}
}

func (w *ReminderWorker) dispatch() {
	sent, err := w.reminders.DispatchDue(w.batchSize)
	w.mu.Lock()
	w.totalRuns++
	w.totalSent += int64(sent)
	w.lastRunAt = time.Now()
	w.mu.Unlock()

	if err != nil {
		w.logger.WithError(err).Error("Reminder dispatch cycle failed")
		return
	}
	if sent > 0 {
		w.logger.WithField("sent", sent).Info("Dispatched payment reminders")
	}
}

// Stats reports worker counters for the health endpoint
func (w *ReminderWorker) Stats() map[string]interface{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return map[string]interface{}{
		"running":   w.running,
		"totalRuns": w.totalRuns,
		"totalSent": w.totalSent,
		"lastRunAt": w.lastRunAt,
	}
}
