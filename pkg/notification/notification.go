// Package notification fans one event out to the channels it declares:
// mail to the customer, Slack to the ops room, webhooks to partners.
//
// A notification is a type that names its channels and provides the
// payload for each one it supports:
//
//	func (n *orderPlacedNotification) Via() []string { return []string{"slack"} }
//	func (n *orderPlacedNotification) ToSlack() notification.SlackData { ... }
//
//	notification.Send(client.Email, n)
package notification

import (
	"fmt"
	"time"

	httpclient "github.com/careerloft/careerloft/pkg/http"
	"github.com/careerloft/careerloft/pkg/logger"
	"github.com/careerloft/careerloft/pkg/mail"
	"github.com/careerloft/careerloft/pkg/workerpool"
)

// Notification names the channels to deliver on.
type Notification interface {
	Via() []string
}

// Mailable supplies the mail channel payload.
type Mailable interface {
	ToMail() MailData
}

// Slackable supplies the Slack channel payload.
type Slackable interface {
	ToSlack() SlackData
}

// Webhookable supplies the webhook channel payload.
type Webhookable interface {
	ToWebhook() WebhookData
}

// MailData is an email to one recipient. To overrides the notifiable
// address when set; Body is HTML with Text as the fallback.
type MailData struct {
	To      string
	Subject string
	Body    string
	Text    string
}

// SlackData posts to an incoming webhook. WebhookURL overrides the
// default configured with SetSlackWebhook.
type SlackData struct {
	WebhookURL  string
	Text        string
	Attachments []SlackAttachment
}

// SlackAttachment is one attachment block. Color is one of Slack's
// "good", "warning" or "danger".
type SlackAttachment struct {
	Color  string `json:"color,omitempty"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Footer string `json:"footer,omitempty"`
}

// WebhookData is an arbitrary JSON POST to a partner URL.
type WebhookData struct {
	URL     string
	Payload any
	Headers map[string]string
}

var slackWebhook string

// SetSlackWebhook configures the default Slack destination at boot.
func SetSlackWebhook(url string) { slackWebhook = url }

// senders holds the async fan-out pool. Bounded so a notification
// storm cannot spawn unbounded goroutines.
var senders = workerpool.New(8)

// Send delivers n on every channel it declares and returns the errors
// of the channels that failed. A channel failure never stops the rest.
func Send(address string, n Notification) []error {
	var errs []error
	for _, ch := range n.Via() {
		if err := deliver(address, ch, n); err != nil {
			logger.Error("notification: channel failed", "channel", ch, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// SendAsync delivers on the shared pool, falling back to a plain
// goroutine when the pool is saturated.
func SendAsync(address string, n Notification) {
	run := func() { Send(address, n) }
	if err := senders.Submit(run); err != nil {
		go run()
	}
}

func deliver(address, channel string, n Notification) error {
	switch channel {
	case "mail":
		if m, ok := n.(Mailable); ok {
			return deliverMail(address, m.ToMail())
		}
	case "slack":
		if s, ok := n.(Slackable); ok {
			return deliverSlack(s.ToSlack())
		}
	case "webhook":
		if w, ok := n.(Webhookable); ok {
			return deliverWebhook(w.ToWebhook())
		}
	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
	return fmt.Errorf("notification: %T declares %q but lacks its payload method", n, channel)
}

func deliverMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}
	body := d.Body
	if body == "" {
		body = d.Text
	}
	return mail.To(to).Subject(d.Subject).Body(body).Send()
}

func deliverSlack(d SlackData) error {
	url := d.WebhookURL
	if url == "" {
		url = slackWebhook
	}
	if url == "" {
		return fmt.Errorf("notification: no slack webhook configured")
	}

	payload := struct {
		Text        string            `json:"text,omitempty"`
		Attachments []SlackAttachment `json:"attachments,omitempty"`
	}{d.Text, d.Attachments}

	resp, err := httpclient.Post(url).
		Body(payload).
		Timeout(5 * time.Second).
		Send()
	if err != nil {
		return fmt.Errorf("notification: slack post: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("notification: slack returned HTTP %d", resp.StatusCode)
	}
	return nil
}

func deliverWebhook(d WebhookData) error {
	if d.URL == "" {
		return fmt.Errorf("notification: webhook URL is empty")
	}

	req := httpclient.Post(d.URL).
		Body(d.Payload).
		Timeout(10 * time.Second).
		Retry(2)
	for k, v := range d.Headers {
		req = req.Header(k, v)
	}

	resp, err := req.Send()
	if err != nil {
		return fmt.Errorf("notification: webhook send: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("notification: webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
