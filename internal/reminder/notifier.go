package reminder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/notelog/backend/internal/model"
	tmpl "github.com/notelog/backend/internal/template"
)

// Notification - 발송 단위
type Notification struct {
	Title    string
	Body     string
	Todo     model.Todo
	Username string
}

// Notifier - 알림 채널. Permitted가 false면 poller는 아무것도 하지 않는다.
type Notifier interface {
	Permitted() bool
	Notify(ctx context.Context, n Notification) error
}

// WriterNotifier - 터미널(또는 임의의 io.Writer)에 알림을 쓴다
type WriterNotifier struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w, now: time.Now}
}

func (n *WriterNotifier) Permitted() bool { return n.w != nil }

func (n *WriterNotifier) Notify(ctx context.Context, note Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	_, err := fmt.Fprintf(n.w, "\a[%s] %s: %s\n", n.now().Format("15:04:05"), note.Title, note.Body)
	return err
}

// Header - webhook 요청 헤더
type Header struct {
	Key   string
	Value string
}

// WebhookConfig - 사용자 지정 webhook 대상
type WebhookConfig struct {
	URL     string
	Method  string
	Headers []Header
	Body    string
}

// WebhookNotifier - 렌더링된 JSON 본문을 사용자 지정 URL로 전송한다
type WebhookNotifier struct {
	cfg        WebhookConfig
	httpClient *http.Client
}

func NewWebhookNotifier(cfg WebhookConfig) *WebhookNotifier {
	if cfg.Method == "" {
		cfg.Method = http.MethodPost
	}
	if cfg.Body == "" {
		cfg.Body = tmpl.DefaultWebhookBody
	}
	return &WebhookNotifier{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (n *WebhookNotifier) Permitted() bool { return n.cfg.URL != "" }

func (n *WebhookNotifier) Notify(ctx context.Context, note Notification) error {
	body := tmpl.RenderReminderJSON(n.cfg.Body, tmpl.TodoDataFromModel(note.Todo), note.Username)

	req, err := http.NewRequestWithContext(ctx, n.cfg.Method, n.cfg.URL, bytes.NewBufferString(body))
	if err != nil {
		return err
	}

	// Content-Type 기본값 설정 (없으면 application/json)
	hasContentType := false
	for _, h := range n.cfg.Headers {
		if h.Key != "" {
			req.Header.Set(h.Key, h.Value)
		}
		if http.CanonicalHeaderKey(h.Key) == "Content-Type" {
			hasContentType = true
		}
	}
	if !hasContentType {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook %s returned status %d", n.cfg.URL, resp.StatusCode)
	}
	return nil
}

// MultiNotifier - 허용된 채널 모두에 보낸다. 하나라도 허용되면 Permitted.
type MultiNotifier []Notifier

func (m MultiNotifier) Permitted() bool {
	for _, n := range m {
		if n.Permitted() {
			return true
		}
	}
	return false
}

func (m MultiNotifier) Notify(ctx context.Context, note Notification) error {
	var errs []error
	for _, n := range m {
		if !n.Permitted() {
			continue
		}
		if err := n.Notify(ctx, note); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
