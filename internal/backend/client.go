// Package backend is the HTTP client for the document-chat service.
//
// The service exposes four endpoints: POST /upload (multipart field "file"),
// POST /chat (multipart fields "message" and optional "image"), GET /clear
// and GET /health. Requests are never retried.
package backend

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	perrors "github.com/nexara/nexara/internal/errors"
	"github.com/nexara/nexara/internal/logger"
)

// User-facing fallbacks when the service gives no usable message.
const (
	UploadFailedMessage = "Upload failed"
	ChatFailedMessage   = "Sorry, something went wrong. Please check your connection."
	ClearFailedMessage  = "Failed to clear backend"
)

// Multipart field names. The chat attachment always goes under "image",
// whatever the file actually is, because that is what the service reads.
const (
	FieldFile       = "file"
	FieldMessage    = "message"
	FieldAttachment = "image"
)

// UploadResult is the body of a successful upload.
type UploadResult struct {
	FileName string `json:"-"`
	Message  string `json:"message"`
}

// ChatResult is the body of a chat reply.
type ChatResult struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Text is what the transcript shows for the reply. Some backend versions
// answer 200 with only an "error" field.
func (r *ChatResult) Text() string {
	if r.Response == "" {
		return r.Error
	}
	return r.Response
}

// errorBody is what the service sends with a non-OK status.
type errorBody struct {
	Error string `json:"error"`
}

// Client talks to one backend.
type Client struct {
	http *resty.Client
	log  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.http.SetHeader("User-Agent", ua) }
}

// New returns a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetRetryCount(0).
			SetHeader("Accept", "application/json"),
		log: logger.WithComponent("backend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service address.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// Upload sends the file at path for indexing.
func (c *Client) Upload(ctx context.Context, path string) (*UploadResult, error) {
	const op = perrors.Op("backend.Upload")
	name := filepath.Base(path)

	if err := checkFile(op, path); err != nil {
		return nil, err
	}

	c.log.Info("uploading", "file", name)
	res, err := c.http.R().
		SetContext(ctx).
		SetFile(FieldFile, path).
		Post("/upload")
	if err != nil {
		c.log.Error("upload request failed", "file", name, "error", err)
		return nil, perrors.E(op, perrors.KindNetwork, perrors.Msg(UploadFailedMessage+": server unreachable"), err)
	}

	if !res.IsSuccess() {
		msg := errorMessage(res.Body(), UploadFailedMessage)
		c.log.Warn("upload rejected", "file", name, "status", res.StatusCode(), "error", msg)
		return nil, perrors.E(op, perrors.KindBackend, perrors.Msg(msg), "status "+res.Status())
	}

	result := &UploadResult{FileName: name}
	// The success body is informational only.
	_ = json.Unmarshal(res.Body(), result)
	c.log.Info("upload indexed", "file", name, "message", result.Message)
	return result, nil
}

// Chat sends message, with the file at attachmentPath when it is not empty.
func (c *Client) Chat(ctx context.Context, message, attachmentPath string) (*ChatResult, error) {
	const op = perrors.Op("backend.Chat")

	req := c.http.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{FieldMessage: message})
	if attachmentPath != "" {
		if err := checkFile(op, attachmentPath); err != nil {
			return nil, err
		}
		req.SetFile(FieldAttachment, attachmentPath)
	}

	c.log.Info("sending chat", "chars", len(message), "attachment", filepath.Base(attachmentPath))
	res, err := req.Post("/chat")
	if err != nil {
		c.log.Error("chat request failed", "error", err)
		return nil, perrors.E(op, perrors.KindNetwork, perrors.Msg(ChatFailedMessage), err)
	}

	if !res.IsSuccess() {
		msg := errorMessage(res.Body(), ChatFailedMessage)
		c.log.Warn("chat rejected", "status", res.StatusCode(), "error", msg)
		return nil, perrors.E(op, perrors.KindBackend, perrors.Msg(msg), "status "+res.Status())
	}

	var result ChatResult
	if err := json.Unmarshal(res.Body(), &result); err != nil {
		c.log.Error("unreadable chat reply", "error", err)
		return nil, perrors.E(op, perrors.KindBackend, perrors.Msg(ChatFailedMessage), err)
	}
	return &result, nil
}

// Clear asks the service to forget every indexed document.
func (c *Client) Clear(ctx context.Context) error {
	const op = perrors.Op("backend.Clear")

	res, err := c.http.R().SetContext(ctx).Get("/clear")
	if err != nil {
		return perrors.E(op, perrors.KindNetwork, perrors.Msg(ClearFailedMessage), err)
	}
	if !res.IsSuccess() {
		return perrors.E(op, perrors.KindBackend, perrors.Msg(errorMessage(res.Body(), ClearFailedMessage)), "status "+res.Status())
	}
	c.log.Info("backend cleared")
	return nil
}

// Health checks that the service is up.
func (c *Client) Health(ctx context.Context) error {
	const op = perrors.Op("backend.Health")

	var body struct {
		Status string `json:"status"`
	}
	res, err := c.http.R().SetContext(ctx).SetResult(&body).Get("/health")
	if err != nil {
		return perrors.E(op, perrors.KindNetwork, perrors.Msg("server unreachable"), err)
	}
	if !res.IsSuccess() || body.Status != "ok" {
		return perrors.E(op, perrors.KindBackend, perrors.Msg("server unhealthy"), "status "+res.Status())
	}
	return nil
}

// errorMessage extracts the "error" field of body, or returns fallback.
func errorMessage(body []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || strings.TrimSpace(eb.Error) == "" {
		return fallback
	}
	return eb.Error
}

func checkFile(op perrors.Op, path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return perrors.FileNotFound(op, path)
	}
	if err != nil {
		return perrors.FileReadFailed(op, path, err)
	}
	if info.IsDir() {
		return perrors.E(op, perrors.KindInvalid, perrors.Msg(filepath.Base(path)+" is a directory"))
	}
	return nil
}
