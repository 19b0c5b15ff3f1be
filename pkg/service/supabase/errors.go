package supabase

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kadr/pkg/domain/model"
)

// errorResponse covers the error bodies of both the auth API and PostgREST.
// The auth API sends a numeric code, PostgREST a SQLSTATE string.
type errorResponse struct {
	Code             json.RawMessage `json:"code"`
	ErrorCode        string          `json:"error_code"`
	Msg              string          `json:"msg"`
	Message          string          `json:"message"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
	Details          string          `json:"details"`
	Hint             string          `json:"hint"`
}

func (e *errorResponse) message() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (e *errorResponse) code() string {
	return strings.Trim(string(e.Code), `"`)
}

func (e *errorResponse) isEmailExists(status int, msg string) bool {
	if e.ErrorCode == "email_exists" {
		return true
	}
	return status == http.StatusUnprocessableEntity &&
		strings.Contains(strings.ToLower(msg), "already been registered")
}

// decodeError turns a non-2xx response into an error whose message is the backend's own
func decodeError(resp *http.Response, opts ...goerr.Option) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		body = errorResponse{}
	}

	msg := body.message()
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	opts = append(opts, goerr.V("status", resp.StatusCode))
	if code := body.code(); code != "" {
		opts = append(opts, goerr.V("code", code))
	}
	if body.ErrorCode != "" {
		opts = append(opts, goerr.V("error_code", body.ErrorCode))
	}
	if body.Details != "" {
		opts = append(opts, goerr.V("details", body.Details))
	}
	if body.Hint != "" {
		opts = append(opts, goerr.V("hint", body.Hint))
	}
	if body.isEmailExists(resp.StatusCode, msg) {
		opts = append(opts, goerr.T(model.ErrTagEmailExists))
	}

	return goerr.New(msg, opts...)
}
