package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"
)

// CheckoutNotification is what the store is told about a paid checkout.
type CheckoutNotification struct {
	Reference     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Summary       string
	Total         string
}

type Service interface {
	SendCheckoutNotification(ctx context.Context, to string, n CheckoutNotification) error
}

type resendService struct {
	apiKey    string
	fromEmail string
	baseURL   string
	client    *http.Client
}

func NewResendService(apiKey, from string) (Service, error) {
	apiKey = strings.Trim(apiKey, "\"")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is not configured")
	}

	from = strings.TrimSpace(strings.Trim(from, "\""))
	if from == "" {
		from = "onboarding@resend.dev"
	}

	return &resendService{
		apiKey:    apiKey,
		fromEmail: from,
		baseURL:   "https://api.resend.com",
		client:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func NewNoopService() Service {
	return &noopService{}
}

func (s *resendService) SendCheckoutNotification(ctx context.Context, to string, n CheckoutNotification) error {
	lines := strings.Split(n.Summary, "\n")
	for i, l := range lines {
		lines[i] = html.EscapeString(l)
	}

	body := fmt.Sprintf(
		"<p>New paid order <strong>%s</strong></p><p>%s</p><p>Total: %s</p><p>%s<br>%s<br>%s</p>",
		html.EscapeString(n.Reference),
		strings.Join(lines, "<br>"),
		html.EscapeString(n.Total),
		html.EscapeString(n.CustomerName),
		html.EscapeString(n.CustomerEmail),
		html.EscapeString(n.CustomerPhone),
	)
	return s.send(ctx, to, "New order "+n.Reference, body)
}

func (s *resendService) send(ctx context.Context, to, subject, htmlBody string) error {
	payload := map[string]any{
		"from":    s.fromEmail,
		"to":      []string{to},
		"subject": subject,
		"html":    htmlBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(respBody))
		if len(msg) > 500 {
			msg = msg[:500]
		}
		if msg == "" {
			return fmt.Errorf("resend API returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("resend API returned status %d: %s", resp.StatusCode, msg)
	}

	return nil
}

type noopService struct{}

func (s *noopService) SendCheckoutNotification(_ context.Context, _ string, _ CheckoutNotification) error {
	return nil
}
