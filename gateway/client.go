package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	//session health states reported by the gateway
	WORKING  string = "WORKING"
	STARTING        = "STARTING"
	SCAN_QR         = "SCAN_QR_CODE"
	FAILED          = "FAILED"
	STOPPED         = "STOPPED"
)

type Health struct {
	Status string `json:"status"`
}

type MediaPayload struct {
	Filename   string `json:"filename"`
	MimeType   string `json:"mimeType"`
	DataBase64 string `json:"dataBase64"`
}

type RateLimiter interface {
	// Wait blocks until the limiter permits an event to happen.
	Wait(ctx context.Context) error
}

type Client interface {
	//GetHealth returns the live health state of the given gateway session
	GetHealth(sessionId string) (Health, error)
	//SendText sends a plain text message and returns the gateway message id
	SendText(sessionId, phone, text string) (string, error)
	//SendMedia sends a media message with the given caption and returns the gateway message id
	SendMedia(sessionId, phone string, media MediaPayload, caption string) (string, error)
}

type client struct {
	baseUrl string
	apiKey  string

	httpClient  *http.Client
	rateLimiter RateLimiter
}

func NewClient(baseUrl, apiKey string, tps int) Client {
	return &client{
		baseUrl:     baseUrl,
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		rateLimiter: rate.NewLimiter(rate.Limit(tps), 1),
	}
}

type sendTextRequest struct {
	Phone string `json:"phone"`
	Text  string `json:"text"`
}

type sendMediaRequest struct {
	Phone      string `json:"phone"`
	Filename   string `json:"filename"`
	MimeType   string `json:"mimeType"`
	DataBase64 string `json:"dataBase64"`
	Caption    string `json:"caption"`
}

type sendResponse struct {
	Id string `json:"id"`
}

func (c *client) GetHealth(sessionId string) (Health, error) {
	var health Health
	req, err := http.NewRequest(http.MethodGet, c.baseUrl+"/api/sessions/"+sessionId, nil)
	if err != nil {
		return health, err
	}
	err = c.do(req, &health)
	return health, err
}

func (c *client) SendText(sessionId, phone, text string) (string, error) {
	c.rateLimiter.Wait(context.Background())

	body, err := json.Marshal(sendTextRequest{Phone: phone, Text: text})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseUrl+"/api/"+sessionId+"/send-text", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var resp sendResponse
	err = c.do(req, &resp)
	return resp.Id, err
}

func (c *client) SendMedia(sessionId, phone string, media MediaPayload, caption string) (string, error) {
	c.rateLimiter.Wait(context.Background())

	body, err := json.Marshal(sendMediaRequest{
		Phone:      phone,
		Filename:   media.Filename,
		MimeType:   media.MimeType,
		DataBase64: media.DataBase64,
		Caption:    caption,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseUrl+"/api/"+sessionId+"/send-media", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var resp sendResponse
	err = c.do(req, &resp)
	return resp.Id, err
}

func (c *client) do(req *http.Request, to interface{}) error {
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned %s: %s", resp.Status, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(to)
}
