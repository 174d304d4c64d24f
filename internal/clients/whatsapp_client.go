package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// WhatsAppClient delivers messages through an external WhatsApp gateway.
// When no gateway is configured the client is disabled and Send reports it.
type WhatsAppClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Entry
}

func NewWhatsAppClient(baseURL string, logger *logrus.Logger) *WhatsAppClient {
	return &WhatsAppClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.WithField("component", "whatsapp-client"),
	}
}

// Enabled reports whether a gateway URL was configured
func (c *WhatsAppClient) Enabled() bool {
	return c.baseURL != ""
}

type sendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Send delivers a text message to a phone number via the gateway
func (c *WhatsAppClient) Send(phone, message string) error {
	if !c.Enabled() {
		return fmt.Errorf("whatsapp gateway not configured")
	}

	payload, err := json.Marshal(sendMessageRequest{Phone: phone, Message: message})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/messages", c.baseURL)
	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to call whatsapp gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}

	c.logger.WithField("phone", phone).Debug("WhatsApp message dispatched")
	return nil
}
