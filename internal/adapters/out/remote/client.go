package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ampliar/clinic-data-gateway/internal/config"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

// TokenSource yields the current bearer credential, or "" when no session is
// active.
type TokenSource interface {
	Token() string
}

// APIError is the uniform failure shape for everything that goes wrong past
// the gateway: transport errors, non-success statuses, unreadable responses.
// Callers never see transport-level errors directly.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	client  *http.Client
	baseURL string
	tokens  TokenSource
	logger  out.LoggerPort
}

func NewClient(cfg *config.Config, tokens TokenSource, logger out.LoggerPort) *Client {
	return &Client{
		client:  &http.Client{Timeout: cfg.Remote.RequestTimeout},
		baseURL: strings.TrimRight(cfg.Remote.URL, "/"),
		tokens:  tokens,
		logger:  logger,
	}
}

// Validation failures come back from the remote in one of three shapes; the
// ladder below walks them most-specific first.
type remoteErrorBody struct {
	Errors []struct {
		DefaultMessage string `json:"defaultMessage"`
		Code           string `json:"code"`
	} `json:"errors"`
	FieldErrors []struct {
		DefaultMessage string `json:"defaultMessage"`
	} `json:"fieldErrors"`
	ErrorField string `json:"error"`
	Message    string `json:"message"`
}

func (c *Client) call(ctx context.Context, method, path string, body interface{}, dest interface{}) error {
	requestID := uuid.NewString()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("failed to encode request for %s: %v", path, err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("failed to build request for %s: %v", path, err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("remote.call.failed", out.LogFields{
			"method":    method,
			"path":      path,
			"requestId": requestID,
			"error":     err.Error(),
		})
		return &APIError{Message: fmt.Sprintf("request to %s failed: %v", path, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.normalizeError(path, resp)
		c.logger.Error("remote.call.rejected", out.LogFields{
			"method":    method,
			"path":      path,
			"requestId": requestID,
			"status":    resp.StatusCode,
			"message":   apiErr.Message,
		})
		return apiErr
	}

	c.logger.Debug("remote.call.success", out.LogFields{
		"method":    method,
		"path":      path,
		"requestId": requestID,
		"status":    resp.StatusCode,
	})

	if dest == nil {
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		// Nothing decodable; the caller asked for a body it will not get.
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("failed to decode response from %s: %v", path, err),
		}
	}

	return nil
}

func (c *Client) normalizeError(path string, resp *http.Response) *APIError {
	message := fmt.Sprintf("error %d calling %s", resp.StatusCode, path)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("error %d: could not read the server response", resp.StatusCode),
		}
	}

	var parsed remoteErrorBody
	if jsonErr := json.Unmarshal(raw, &parsed); jsonErr == nil {
		switch {
		case len(parsed.Errors) > 0:
			messages := make([]string, 0, len(parsed.Errors))
			for _, e := range parsed.Errors {
				if e.DefaultMessage != "" {
					messages = append(messages, e.DefaultMessage)
				} else {
					messages = append(messages, e.Code)
				}
			}
			message = strings.Join(messages, ", ")
		case len(parsed.FieldErrors) > 0:
			messages := make([]string, 0, len(parsed.FieldErrors))
			for _, e := range parsed.FieldErrors {
				messages = append(messages, e.DefaultMessage)
			}
			message = strings.Join(messages, ", ")
		case parsed.ErrorField != "":
			message = parsed.ErrorField
		case parsed.Message != "":
			message = parsed.Message
		default:
			message = fmt.Sprintf("error %d: unexpected server response", resp.StatusCode)
		}
	} else if len(bytes.TrimSpace(raw)) > 0 {
		message = string(raw)
	} else {
		message = fmt.Sprintf("error %d: the server response was empty", resp.StatusCode)
	}

	return &APIError{Status: resp.StatusCode, Message: message}
}
