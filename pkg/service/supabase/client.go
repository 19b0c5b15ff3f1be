package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kadr/pkg/domain/interfaces"
	"github.com/secmon-lab/kadr/pkg/domain/model"
	"github.com/secmon-lab/kadr/pkg/domain/types"
)

const (
	adminUsersPath = "/auth/v1/admin/users"
	userRolesPath  = "/rest/v1/user_roles"

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 1 << 20
)

// Client talks to the Supabase auth admin API and the PostgREST data API with the
// service role key. It keeps no session: every request carries the key.
type Client struct {
	baseURL    *url.URL
	serviceKey string
	httpClient *http.Client
}

var (
	_ interfaces.IdentityIssuer = (*Client)(nil)
	_ interfaces.RoleStore      = (*Client)(nil)
)

// Option configures the Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// New creates a privileged client. Missing or unusable secrets are setup errors.
func New(cfg model.BackendConfig, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := CheckServiceKey(cfg.ServiceKey); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, goerr.Wrap(err, "invalid backend base URL", goerr.T(model.ErrTagSetup))
	}

	client := &Client{
		baseURL:    baseURL,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

type createUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	EmailConfirm bool   `json:"email_confirm"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	// Some gateway versions wrap the user object
	User *struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user,omitempty"`
}

// CreateIdentity creates a pre-confirmed user through the auth admin API
func (c *Client) CreateIdentity(ctx context.Context, email, password string) (*model.Identity, error) {
	req := createUserRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
	}

	var resp userResponse
	if err := c.post(ctx, adminUsersPath, req, nil, &resp,
		goerr.V("email", email),
		goerr.T(model.ErrTagIdentity),
	); err != nil {
		return nil, err
	}

	identity := &model.Identity{
		ID:    types.UserID(resp.ID),
		Email: resp.Email,
	}
	if identity.ID == "" && resp.User != nil {
		identity.ID = types.UserID(resp.User.ID)
		identity.Email = resp.User.Email
	}
	if identity.ID == "" {
		return nil, goerr.New("auth backend response has no user id",
			goerr.V("email", email),
			goerr.T(model.ErrTagIdentity))
	}

	ctxlog.From(ctx).Debug("Identity created in auth backend", "user_id", identity.ID)
	return identity, nil
}

type userRoleRow struct {
	UserID types.UserID `json:"user_id"`
	Role   types.Role   `json:"role"`
}

// AssignRole inserts a row into the user_roles table through PostgREST
func (c *Client) AssignRole(ctx context.Context, userID types.UserID, role types.Role) error {
	row := userRoleRow{UserID: userID, Role: role}
	headers := map[string]string{"Prefer": "return=minimal"}

	if err := c.post(ctx, userRolesPath, row, headers, nil,
		goerr.V("userID", userID),
		goerr.V("role", role),
		goerr.T(model.ErrTagRoleAssignment),
	); err != nil {
		return err
	}

	return nil
}

// post sends a JSON request. opts are attached to every error it returns.
func (c *Client) post(ctx context.Context, path string, body any, headers map[string]string, out any, opts ...goerr.Option) error {
	opts = append(opts, goerr.V("path", path))

	payload, err := json.Marshal(body)
	if err != nil {
		return goerr.Wrap(err, "failed to encode request body", opts...)
	}

	endpoint := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return goerr.Wrap(err, "failed to create request", opts...)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send request to backend", opts...)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp, opts...)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode backend response",
			append(opts, goerr.V("status", resp.StatusCode))...)
	}
	return nil
}
