package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/ontime/internal/config"
	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/internal/utils"
	"github.com/MKhiriev/ontime/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It validates adapterCfg.HTTPAddress and configures the underlying HTTP client
// with the resolved base URL and request timeout.
//
// Returns an error wrapping [ErrInvalidAddress] if adapterCfg.HTTPAddress is
// empty or cannot be parsed as a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	if err := validateAddress(adapterCfg.HTTPAddress); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	client := utils.NewHTTPClient(adapterCfg.HTTPAddress, adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func validateAddress(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("address must include host and scheme")
	}

	return nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the JSON payload to
// /auth/register and returns the created user.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}

	var user models.User
	if err = decode(resp, &user); err != nil {
		return models.User{}, fmt.Errorf("register: %w", err)
	}

	h.logger.Debug().Int64("user_id", user.ID).Msg("registered")
	return user, nil
}

// Login implements [ServerAdapter]. Credentials are sent as a form body.
func (h *httpServerAdapter) Login(ctx context.Context, username, password string) (models.TokenResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": username,
			"password": password,
		}).
		Post("/auth/login")
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("login request: %w", err)
	}

	var token models.TokenResponse
	if err = decode(resp, &token); err != nil {
		return models.TokenResponse{}, fmt.Errorf("login: %w", err)
	}

	h.SetToken(token.AccessToken)
	return token, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	resp, err := h.authedRequest(ctx).Get("/auth/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}

	var user models.User
	if err = decode(resp, &user); err != nil {
		return models.User{}, fmt.Errorf("me: %w", err)
	}
	return user, nil
}

// Logout implements [ServerAdapter]. The stored token is cleared even if the
// server rejects the request.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/auth/logout")
	h.SetToken("")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) CreateTodo(ctx context.Context, req models.TodoCreate) (models.Todo, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/todos/")
	if err != nil {
		return models.Todo{}, fmt.Errorf("create todo request: %w", err)
	}

	var todo models.Todo
	if err = decode(resp, &todo); err != nil {
		return models.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

func (h *httpServerAdapter) ListTodos(ctx context.Context, page models.Page) ([]models.Todo, error) {
	resp, err := h.pagedRequest(ctx, page).Get("/todos/")
	if err != nil {
		return nil, fmt.Errorf("list todos request: %w", err)
	}

	var todos []models.Todo
	if err = decode(resp, &todos); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (h *httpServerAdapter) GetTodo(ctx context.Context, id int64) (models.Todo, error) {
	resp, err := h.authedRequest(ctx).Get(todoPath(id))
	if err != nil {
		return models.Todo{}, fmt.Errorf("get todo request: %w", err)
	}

	var todo models.Todo
	if err = decode(resp, &todo); err != nil {
		return models.Todo{}, fmt.Errorf("get todo: %w", err)
	}
	return todo, nil
}

func (h *httpServerAdapter) UpdateTodo(ctx context.Context, id int64, patch models.TodoUpdate) (models.Todo, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(patch).
		Put(todoPath(id))
	if err != nil {
		return models.Todo{}, fmt.Errorf("update todo request: %w", err)
	}

	var todo models.Todo
	if err = decode(resp, &todo); err != nil {
		return models.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

func (h *httpServerAdapter) ToggleTodo(ctx context.Context, id int64) (models.Todo, error) {
	resp, err := h.authedRequest(ctx).Patch(todoPath(id) + "/complete")
	if err != nil {
		return models.Todo{}, fmt.Errorf("toggle todo request: %w", err)
	}

	var todo models.Todo
	if err = decode(resp, &todo); err != nil {
		return models.Todo{}, fmt.Errorf("toggle todo: %w", err)
	}
	return todo, nil
}

func (h *httpServerAdapter) DeleteTodo(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).Delete(todoPath(id))
	if err != nil {
		return fmt.Errorf("delete todo request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) CreateNote(ctx context.Context, req models.NoteCreate) (models.Note, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/notes/")
	if err != nil {
		return models.Note{}, fmt.Errorf("create note request: %w", err)
	}

	var note models.Note
	if err = decode(resp, &note); err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (h *httpServerAdapter) ListNotes(ctx context.Context, page models.Page) ([]models.Note, error) {
	resp, err := h.pagedRequest(ctx, page).Get("/notes/")
	if err != nil {
		return nil, fmt.Errorf("list notes request: %w", err)
	}

	var notes []models.Note
	if err = decode(resp, &notes); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (h *httpServerAdapter) GetNote(ctx context.Context, id int64) (models.Note, error) {
	resp, err := h.authedRequest(ctx).Get(notePath(id))
	if err != nil {
		return models.Note{}, fmt.Errorf("get note request: %w", err)
	}

	var note models.Note
	if err = decode(resp, &note); err != nil {
		return models.Note{}, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

func (h *httpServerAdapter) UpdateNote(ctx context.Context, id int64, patch models.NoteUpdate) (models.Note, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(patch).
		Put(notePath(id))
	if err != nil {
		return models.Note{}, fmt.Errorf("update note request: %w", err)
	}

	var note models.Note
	if err = decode(resp, &note); err != nil {
		return models.Note{}, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (h *httpServerAdapter) DeleteNote(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).Delete(notePath(id))
	if err != nil {
		return fmt.Errorf("delete note request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// pagedRequest adds skip and limit for the non-zero fields of page.
func (h *httpServerAdapter) pagedRequest(ctx context.Context, page models.Page) *resty.Request {
	req := h.authedRequest(ctx)
	if page.Skip > 0 {
		req.SetQueryParam("skip", strconv.FormatUint(page.Skip, 10))
	}
	if page.Limit > 0 {
		req.SetQueryParam("limit", strconv.FormatUint(page.Limit, 10))
	}
	return req
}

// decode maps error statuses and unmarshals a successful body into dst.
func decode(resp *resty.Response, dst any) error {
	if err := mapHTTPError(resp); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body(), dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func todoPath(id int64) string {
	return "/todos/" + strconv.FormatInt(id, 10)
}

func notePath(id int64) string {
	return "/notes/" + strconv.FormatInt(id, 10)
}
