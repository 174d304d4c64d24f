package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

const (
	StreamName = "STOREFRONT"

	SubjectOrderCreated       = "storefront.order.created"
	SubjectSaleCreated        = "storefront.sale.created"
	SubjectReceivableReminder = "storefront.receivable.reminder"
)

// Publisher emits domain events over NATS JetStream. Publishing is fire and
// forget: event delivery never blocks or fails the originating request.
type Publisher struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the stream exists. Returns nil
// (events disabled) when url is empty or the connection fails.
func NewPublisher(url string, logger *logrus.Logger) *Publisher {
	log := logger.WithField("component", "event-publisher")
	if url == "" {
		log.Info("NATS_URL not set, event publishing disabled")
		return nil
	}

	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		log.WithError(err).Warn("Failed to connect to NATS, event publishing disabled")
		return nil
	}

	js, err := nc.JetStream()
	if err != nil {
		log.WithError(err).Warn("Failed to create JetStream context, event publishing disabled")
		nc.Close()
		return nil
	}

	if _, err := js.AddStream(&nats.StreamConfig{
		Name:     StreamName,
		Subjects: []string{"storefront.>"},
		Storage:  nats.FileStorage,
		MaxAge:   7 * 24 * time.Hour,
	}); err != nil && err != nats.ErrStreamNameAlreadyInUse {
		log.WithError(err).Warn("Failed to ensure stream, event publishing disabled")
		nc.Close()
		return nil
	}

	log.Info("Connected to NATS JetStream")
	return &Publisher{nc: nc, js: js, logger: log}
}

// Close drains the connection
func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	p.nc.Drain()
}

type envelope struct {
	TenantID  string      `json:"tenantId"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func (p *Publisher) publish(subject, tenantID string, data interface{}) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(envelope{
		TenantID:  tenantID,
		Type:      subject,
		Timestamp: time.Now(),
		Data:      data,
	})
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Error("Failed to encode event")
		return
	}
	if _, err := p.js.PublishAsync(subject, payload); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Error("Failed to publish event")
	}
}

// PublishOrderCreated emits an order.created event
func (p *Publisher) PublishOrderCreated(tenantID string, order *models.Order) {
	p.publish(SubjectOrderCreated, tenantID, order)
}

// PublishSaleCreated emits a sale.created event
func (p *Publisher) PublishSaleCreated(tenantID string, sale *models.Sale) {
	p.publish(SubjectSaleCreated, tenantID, sale)
}

// PublishReceivableReminder emits a receivable.reminder event after a
// reminder was dispatched
func (p *Publisher) PublishReceivableReminder(tenantID string, receivable *models.Receivable) {
	p.publish(SubjectReceivableReminder, tenantID, receivable)
}
