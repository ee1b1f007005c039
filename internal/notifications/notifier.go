package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/mvasiljevic/lifehub/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/codes"
)

const defaultRequestTimeout = 10 * time.Second

type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"` // seconds
}

// accessTokenCache holds the webhook access token until it expires,
// so we don't hit the token endpoint on every single notification.
type accessTokenCache struct {
	mutex     sync.Mutex
	token     string
	expiresAt time.Time
}

func (c *accessTokenCache) get() (string, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.token == "" || time.Now().After(c.expiresAt) {
		return "", false
	}
	return c.token, true
}

func (c *accessTokenCache) set(token string, expiresIn time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.token = token
	// renew a bit before the actual expiry
	c.expiresAt = time.Now().Add(expiresIn - 30*time.Second)
}

type Notifier struct {
	webhookURL string
	tokenURL   string
	httpClient *http.Client
	tokenCache *accessTokenCache
}

func NewNotifier(webhookURL, tokenURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		tokenURL:   tokenURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   defaultRequestTimeout,
		},
		tokenCache: &accessTokenCache{},
	}
}

func (n *Notifier) Send(ctx context.Context, message Message) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notifier.send")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if n.webhookURL == "" {
		log.Traceln("notifier disabled, webhook url empty")
		return nil
	}

	token, err := n.accessToken(ctx)
	if err != nil {
		return fmt.Errorf("get access token: %w", err)
	}

	messageJson, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", n.webhookURL, bytes.NewReader(messageJson))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Errorf("notifier, close response body: %s", err)
		}
	}()

	if resp.StatusCode >= 300 {
		span.SetStatus(codes.Error, fmt.Sprintf("webhook status: %d", resp.StatusCode))
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}

	log.Tracef("notification sent: %s", message.Title)
	return nil
}

func (n *Notifier) accessToken(ctx context.Context) (string, error) {
	if token, ok := n.tokenCache.get(); ok {
		return token, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", n.tokenURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Errorf("notifier, close token response body: %s", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint responded with status %d", resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(respBytes, &tokenResp); err != nil {
		return "", fmt.Errorf("unmarshal token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty token")
	}

	n.tokenCache.set(tokenResp.AccessToken, time.Duration(tokenResp.ExpiresIn)*time.Second)
	return tokenResp.AccessToken, nil
}
