package services

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/clients"
	"storefront-service/internal/events"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

// ReminderService builds and dispatches WhatsApp payment reminders for
// receivables. The reminder worker calls DispatchDue on an interval; the
// handlers use BuildReminderLink for manual, click-to-send reminders.
type ReminderService struct {
	receivables *repository.ReceivablesRepository
	aggregator  *CartAggregator
	whatsapp    *clients.WhatsAppClient
	publisher   *events.Publisher
	logger      *logrus.Entry
}

func NewReminderService(
	receivables *repository.ReceivablesRepository,
	aggregator *CartAggregator,
	whatsapp *clients.WhatsAppClient,
	publisher *events.Publisher,
	logger *logrus.Logger,
) *ReminderService {
	return &ReminderService{
		receivables: receivables,
		aggregator:  aggregator,
		whatsapp:    whatsapp,
		publisher:   publisher,
		logger:      logger.WithField("component", "reminder-service"),
	}
}

// BuildReminderMessage renders the payment reminder text
func (s *ReminderService) BuildReminderMessage(r *models.Receivable) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Hola %s! Le recordamos su pago pendiente de %.2f %s",
		r.CustomerName, r.Outstanding(), r.Currency))
	b.WriteString(fmt.Sprintf(" con vencimiento %s.", r.DueDate.Format("02/01/2006")))
	if r.AmountPaid > 0 {
		b.WriteString(fmt.Sprintf(" Abonado hasta ahora: %.2f %s.", r.AmountPaid, r.Currency))
	}
	return b.String()
}

// BuildReminderLink returns a wa.me deep link for a manual reminder, or an
// error when the receivable has no phone on file.
func (s *ReminderService) BuildReminderLink(r *models.Receivable) (string, error) {
	if r.CustomerPhone == nil || *r.CustomerPhone == "" {
		return "", fmt.Errorf("receivable has no customer phone")
	}
	return s.aggregator.BuildWhatsAppLink(*r.CustomerPhone, s.BuildReminderMessage(r)), nil
}

// DispatchDue sends reminders for every receivable whose schedule has
// passed. Dispatch failures leave the schedule intact for the next cycle.
// Returns the number of reminders sent.
func (s *ReminderService) DispatchDue(batchSize int) (int, error) {
	due, err := s.receivables.GetDueReminders(batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to load due reminders: %w", err)
	}

	sent := 0
	for i := range due {
		r := &due[i]
		if r.CustomerPhone == nil || *r.CustomerPhone == "" {
			s.logger.WithField("receivableId", r.ID).Warn("Skipping reminder, no customer phone")
			if err := s.receivables.MarkReminderSent(r.ID); err != nil {
				s.logger.WithError(err).WithField("receivableId", r.ID).Error("Failed to clear reminder schedule")
			}
			continue
		}

		if !s.whatsapp.Enabled() {
			s.logger.WithField("receivableId", r.ID).Debug("Gateway disabled, recording attempt only")
		} else if err := s.whatsapp.Send(*r.CustomerPhone, s.BuildReminderMessage(r)); err != nil {
			s.logger.WithError(err).WithField("receivableId", r.ID).Error("Failed to send reminder")
			continue
		}

		if err := s.receivables.MarkReminderSent(r.ID); err != nil {
			s.logger.WithError(err).WithField("receivableId", r.ID).Error("Failed to record reminder attempt")
			continue
		}
		sent++

		if s.publisher != nil {
			s.publisher.PublishReceivableReminder(r.TenantID, r)
		}
	}

	return sent, nil
}
