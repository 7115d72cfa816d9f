package botservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/meetscribe-team/meetscribe/pkg/config"
)

// BotMeeting is the recording service's view of a meeting
type BotMeeting struct {
	ID            string    `json:"_id"`
	UserID        string    `json:"userId"`
	Status        string    `json:"status"`
	MeetingID     string    `json:"meetingId"`
	IsRecording   bool      `json:"isRecording"`
	Transcription string    `json:"transcription"`
	Summarization string    `json:"summarization"`
	OutputURL     string    `json:"outputUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Client calls the external bot-recording HTTP service. The service itself
// is opaque; only its REST surface is modeled here.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new bot service client
func NewClient(cfg *config.BotConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type startRecordingRequest struct {
	MeetingID string `json:"meetingId"`
}

type startRecordingResponse struct {
	BotID string `json:"botId"`
}

type stopRecordingRequest struct {
	BotID string `json:"botId"`
}

type listBotsResponse struct {
	Bots []BotMeeting `json:"bots"`
}

// StartRecording asks the bot service to join and record a meeting.
// Submission is retried with exponential backoff since bot dispatch is
// briefly unavailable while a bot container spins up.
func (c *Client) StartRecording(ctx context.Context, meetingID string) (string, error) {
	var botID string

	submitFn := func() error {
		resp, err := c.post(ctx, "/bots/recording/start", startRecordingRequest{MeetingID: meetingID})
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("bot service returned status %d: %s", resp.StatusCode, string(body))
		}

		var out startRecordingResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		botID = out.BotID
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute

	if err := backoff.Retry(submitFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("failed to start recording: %w", err)
	}
	return botID, nil
}

// StopRecording asks the bot service to stop an active recording
func (c *Client) StopRecording(ctx context.Context, botID string) error {
	resp, err := c.post(ctx, "/bots/recording/stop", stopRecordingRequest{BotID: botID})
	if err != nil {
		return fmt.Errorf("failed to stop recording: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bot service returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// ListBots fetches all bot recordings known to the service
func (c *Client) ListBots(ctx context.Context) ([]BotMeeting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/bots/all", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bot service returned status %d: %s", resp.StatusCode, string(body))
	}

	var out listBotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return out.Bots, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to marshal payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	return c.client.Do(req)
}
