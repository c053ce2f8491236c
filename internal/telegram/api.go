package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// DefaultServer is the public Bot API server.
const DefaultServer = "https://api.telegram.org"

// Request is implemented by every request struct of this package.
type Request interface {
	Method() string
}

type TelegramAPI struct {
	token  string
	server string
	client *resty.Client
}

func NewTelegramAPI(token string) *TelegramAPI {
	return NewTelegramAPIWithServer(token, DefaultServer)
}

// NewTelegramAPIWithServer talks to a self-hosted Bot API server or a test
// double instead of api.telegram.org.
func NewTelegramAPIWithServer(token, server string) *TelegramAPI {
	return &TelegramAPI{
		token:  token,
		server: strings.TrimRight(server, "/"),
		client: resty.New(),
	}
}

// Response is the envelope wrapping every Bot API result.
type Response struct {
	OK          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result,omitempty"`
	Description string              `json:"description,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

// ResponseParameters explains why a request failed and how to retry it.
type ResponseParameters struct {
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
	RetryAfter      int   `json:"retry_after,omitempty"`
}

// APIError is a request Telegram received and refused.
type APIError struct {
	Method      string
	Code        int
	Description string
	Parameters  *ResponseParameters
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: telegram error %d: %s", e.Method, e.Code, e.Description)
}

// Temporary reports whether the same request may succeed later: flood
// control (429) and server side failures.
func (e *APIError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

type requestIDKey struct{}

// WithRequestID makes calls made with ctx carry id in the X-Request-ID
// header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Do sends req and decodes the result into out, which may be nil.
func (t *TelegramAPI) Do(ctx context.Context, req Request, out any) error {
	return t.Call(ctx, req.Method(), req, out)
}

// Call sends params to method and decodes the result into out, which may be
// nil. Requests carrying files to upload go out as multipart/form-data,
// everything else as JSON.
func (t *TelegramAPI) Call(ctx context.Context, method string, params any, out any) error {
	if t.token == "" {
		return fmt.Errorf("%s: TELEGRAM_BOT_TOKEN is not set", method)
	}

	req := t.client.R().SetContext(ctx)
	if id := RequestID(ctx); id != "" {
		req.SetHeader("X-Request-ID", id)
	}
	if err := setBody(req, params); err != nil {
		return fmt.Errorf("%s: encode request: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", t.server, t.token, method)
	resp, err := req.Post(url)
	if err != nil {
		return fmt.Errorf("%s: http call to telegram failed: %w", method, err)
	}

	var envelope Response
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return fmt.Errorf("%s: telegram returned status %d: %w", method, resp.StatusCode(), err)
	}
	if !envelope.OK {
		return &APIError{
			Method:      method,
			Code:        envelope.ErrorCode,
			Description: envelope.Description,
			Parameters:  envelope.Parameters,
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("%s: decode result: %w", method, err)
	}
	return nil
}

func setBody(req *resty.Request, params any) error {
	if params == nil {
		return nil
	}
	if mp, ok := params.(multipartRequest); ok {
		uploads := make(map[string]InputFile)
		for field, f := range mp.files() {
			if f.NeedsUpload() {
				uploads[field] = f
			}
		}
		if len(uploads) > 0 {
			return setMultipart(req, params, uploads)
		}
	}
	body, err := json.Marshal(params)
	if err != nil {
		return err
	}
	req.SetHeader("Content-Type", "application/json").SetBody(body)
	return nil
}

// setMultipart sends every parameter as a form field, strings verbatim and
// everything else as JSON, and attaches each upload under its parameter name.
func setMultipart(req *resty.Request, params any, uploads map[string]InputFile) error {
	data, err := json.Marshal(params)
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	form := make(map[string]string, len(fields))
	for k, v := range fields {
		if _, upload := uploads[k]; upload {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			form[k] = s
		} else {
			form[k] = string(v)
		}
	}
	req.SetFormData(form)

	for field, f := range uploads {
		if f.Path != "" {
			req.SetFile(field, f.Path)
		} else {
			req.SetFileReader(field, f.Name, bytes.NewReader(f.Data))
		}
	}
	return nil
}
