package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dkotelnikov/user-service/models"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client
}

func NewHTTPServerAdapter(cfg HTTPClientConfig) ServerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli}
}

func (h *httpServerAdapter) ListUsers(ctx context.Context, req models.ListUsersRequest) (models.ListUsersResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(listQueryParams(req)).
		Get("/users")
	if err != nil {
		return models.ListUsersResponse{}, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ListUsersResponse{}, err
	}

	var list models.ListUsersResponse
	if err = json.Unmarshal(resp.Body(), &list); err != nil {
		return models.ListUsersResponse{}, fmt.Errorf("decode list users response: %w", err)
	}

	return list, nil
}

func (h *httpServerAdapter) GetUser(ctx context.Context, id string) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/users/" + url.PathEscape(id))
	if err != nil {
		return models.User{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return decodeUser(resp.Body())
}

func (h *httpServerAdapter) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/users")
	if err != nil {
		return models.User{}, fmt.Errorf("create user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return decodeUser(resp.Body())
}

func (h *httpServerAdapter) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		Put("/users/" + url.PathEscape(id))
	if err != nil {
		return models.User{}, fmt.Errorf("update user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return decodeUser(resp.Body())
}

func (h *httpServerAdapter) DeleteUser(ctx context.Context, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete("/users/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) RestoreUser(ctx context.Context, id string) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Patch("/users/" + url.PathEscape(id) + "/restore")
	if err != nil {
		return models.User{}, fmt.Errorf("restore user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return decodeUser(resp.Body())
}

func (h *httpServerAdapter) GetServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("get server version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

func decodeUser(body []byte) (models.User, error) {
	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return models.User{}, fmt.Errorf("decode user response: %w", err)
	}
	return user, nil
}

func listQueryParams(req models.ListUsersRequest) url.Values {
	params := url.Values{}

	if req.Page > 0 {
		params.Set("page", strconv.Itoa(req.Page))
	}
	if req.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(req.PerPage))
	}
	if req.Filter.IsActive != nil {
		params.Set("is_active", strconv.FormatBool(*req.Filter.IsActive))
	}
	if req.Filter.MinAge != nil {
		params.Set("min_age", strconv.Itoa(*req.Filter.MinAge))
	}
	if req.Filter.MaxAge != nil {
		params.Set("max_age", strconv.Itoa(*req.Filter.MaxAge))
	}

	return params
}
