package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/adilet/campaign-sender/util"
	"github.com/cskr/pubsub"
	"go.uber.org/zap"
)

const statusTopic = "campaign.status"

// StatusEvent is published on every campaign status transition.
type StatusEvent struct {
	CampaignId  uint32 `json:"campaignId"`
	Status      string `json:"status"`
	SentCount   int    `json:"sentCount"`
	FailedCount int    `json:"failedCount"`
}

type Bus struct {
	ps *pubsub.PubSub
}

func NewBus() *Bus {
	return &Bus{ps: pubsub.New(100)}
}

func (b *Bus) Publish(event StatusEvent) {
	b.ps.Pub(event, statusTopic)
}

func (b *Bus) Subscribe() chan interface{} {
	return b.ps.Sub(statusTopic)
}

// WebhookNotifier POSTs campaign status transitions to a configured url.
type WebhookNotifier struct {
	webhook    string
	httpClient *http.Client
}

func NewWebhookNotifier(webhook string) *WebhookNotifier {
	return &WebhookNotifier{
		webhook:    webhook,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Start subscribes to the bus and notifies until the subscription channel closes.
// No-op when no webhook url is configured.
func (n *WebhookNotifier) Start(bus *Bus) {
	if util.IsBlank(n.webhook) {
		return
	}
	go func() {
		for val := range bus.Subscribe() {
			n.notify(val.(StatusEvent))
		}
	}()
}

func (n *WebhookNotifier) notify(event StatusEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("Error marshalling status event", zap.Error(err))
		return
	}

	req, err := http.NewRequest(http.MethodPost, n.webhook, bytes.NewBuffer(body))
	if err != nil {
		zap.L().Error("Error calling web hook", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		zap.L().Error("Error calling web hook", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if !(resp.StatusCode >= 200 && resp.StatusCode <= 202) {
		zap.L().Warn("Webhook returned unexpected status", zap.String("status", resp.Status))
	}
}
