package kakao

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://kapi.kakao.com"

	memoSendPath   = "/v2/api/talk/memo/default/send"
	requestTimeout = 10 * time.Second
)

// Result reports the outcome of a notification attempt. The daily report is
// best effort; failure is data the caller can log, never an error that
// aborts a run.
type Result struct {
	OK     bool   `json:"ok"`
	Status int    `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Notifier sends KakaoTalk "memo to self" messages for the authenticated
// user.
type Notifier struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewNotifier(token string) *Notifier {
	return &Notifier{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    DefaultBaseURL,
		token:      token,
	}
}

// SendSelfMessage posts text as a self memo. Without a configured token it
// returns a failed Result immediately, making no network call.
func (n *Notifier) SendSelfMessage(ctx context.Context, text string) Result {
	if n.token == "" {
		return Result{OK: false, Detail: "notifier token not configured"}
	}

	template, err := json.Marshal(map[string]interface{}{
		"object_type": "text",
		"text":        text,
		"link":        map[string]interface{}{},
	})
	if err != nil {
		return Result{OK: false, Detail: "failed to encode message template: " + err.Error()}
	}

	form := url.Values{}
	form.Set("template_object", string(template))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+memoSendPath, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{OK: false, Detail: "failed to create request: " + err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return Result{OK: false, Detail: "request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("Notifier send failed", "status", resp.StatusCode, "body", string(body))
		return Result{OK: false, Status: resp.StatusCode, Detail: strings.TrimSpace(string(body))}
	}

	return Result{OK: true, Status: resp.StatusCode}
}
