package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ecoscan/ecoscan/internal/model"
)

const postmarkAPIURL = "https://api.postmarkapp.com/email"

type Client struct {
	serverToken string
	fromEmail   string
	apiURL      string
	httpClient  *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithAPIURL overrides the Postmark endpoint, used by tests.
func WithAPIURL(url string) Option {
	return func(cl *Client) {
		cl.apiURL = url
	}
}

func NewClient(serverToken, fromEmail string, opts ...Option) *Client {
	c := &Client{
		serverToken: serverToken,
		fromEmail:   fromEmail,
		apiURL:      postmarkAPIURL,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the server token is set.
func (c *Client) Configured() bool {
	return c.serverToken != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// SendWelcome greets a newly registered user.
func (c *Client) SendWelcome(toEmail, name string) error {
	if name == "" {
		name = "there"
	}
	textBody := fmt.Sprintf(
		"Hi %s,\n\nWelcome to Eco-Scan. Scan your first waste label to earn points and start collecting badges.\n",
		name,
	)
	htmlBody := fmt.Sprintf(
		`<p>Hi %s,</p><p>Welcome to Eco-Scan. Scan your first waste label to earn points and start collecting badges.</p>`,
		name,
	)
	return c.send(postmarkEmail{
		From:     c.fromEmail,
		To:       toEmail,
		Subject:  "Welcome to Eco-Scan",
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
}

// SendRedemptionReceipt confirms a reward redemption.
func (c *Client) SendRedemptionReceipt(toEmail string, rec *model.RedemptionRecord) error {
	when := time.UnixMilli(rec.Timestamp).Format("Jan 2, 2006 3:04 PM")
	textBody := fmt.Sprintf(
		"You redeemed %s for %d points on %s.\n\nRedemption ID: %s\n",
		rec.Title, rec.PointsCost, when, rec.ID,
	)
	htmlBody := fmt.Sprintf(
		`<p>You redeemed <strong>%s</strong> for %d points on %s.</p><p>Redemption ID: %s</p>`,
		rec.Title, rec.PointsCost, when, rec.ID,
	)
	return c.send(postmarkEmail{
		From:     c.fromEmail,
		To:       toEmail,
		Subject:  fmt.Sprintf("Your Eco-Scan reward: %s", rec.Title),
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
}

func (c *Client) send(payload postmarkEmail) error {
	if !c.Configured() {
		return fmt.Errorf("email client not configured: missing server token")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequest("POST", c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("postmark API error: status %d", resp.StatusCode)
	}

	return nil
}
