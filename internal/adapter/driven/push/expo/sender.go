// Package expo delivers push alerts through an Expo-compatible push endpoint.
package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/vistacall/relay/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

type Sender struct {
	endpoint string
	client   *http.Client
}

func NewSender(endpoint string) *Sender {
	return &Sender{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

type pushMessage struct {
	To    string           `json:"to"`
	Sound string           `json:"sound"`
	Title string           `json:"title"`
	Body  string           `json:"body"`
	Data  domain.PushAlert `json:"data"`
}

func (s *Sender) Send(ctx context.Context, token string, alert domain.PushAlert) error {
	msg := pushMessage{
		To:    token,
		Sound: "default",
		Title: "Incoming call",
		Body:  alert.From + " is calling",
		Data:  alert,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal push message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "build push request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "deliver push")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("push endpoint returned %s", resp.Status)
	}
	return nil
}
