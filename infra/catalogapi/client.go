package catalogapi

import (
	"bytes"
	"catalogconsole/domain"
	"catalogconsole/pkg/auth"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxErrorBody = 64 * 1024

// Client talks to the catalog REST backend. Every call is a single request whose
// success is decided by one expected status code.
type Client struct {
	baseURL   string
	loginPath string
	http      *http.Client
}

func NewClient(baseURL, loginPath string, timeout time.Duration) *Client {
	if loginPath == "" {
		loginPath = "/login"
	}
	if !strings.HasPrefix(loginPath, "/") {
		loginPath = "/" + loginPath
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		loginPath: loginPath,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, http.StatusOK, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	var category domain.Category
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/categories", nil, body, http.StatusCreated, &category); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil, http.StatusOK, nil)
}

// ListProducts returns every product, or only those of categoryID when it is not empty.
func (c *Client) ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error) {
	var query url.Values
	if categoryID != "" {
		query = url.Values{"category_id": []string{categoryID}}
	}

	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, http.StatusOK, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, product domain.Product) error {
	product.ID = ""
	return c.do(ctx, http.MethodPost, "/products", nil, product, http.StatusCreated, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, product domain.Product) error {
	return c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(product.ID), nil, product, http.StatusOK, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil, http.StatusOK, nil)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login relays credentials to the backend and returns the bearer token it issues.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var res loginResponse
	req := loginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, c.loginPath, nil, req, http.StatusOK, &res); err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", fmt.Errorf("catalog api %s: response carries no token", c.loginPath)
	}
	return res.Token, nil
}

// Ping checks that the backend answers a category listing.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ListCategories(ctx)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, expected int, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("catalog api %s %s: encode body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("catalog api %s %s: build request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := auth.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		zap.L().Error("Catalog API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("catalog api %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != expected {
		upstreamErr := &domain.UpstreamError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
		zap.L().Warn("Catalog API returned unexpected status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("expected", expected),
			zap.Int("status", resp.StatusCode),
			zap.String("message", upstreamErr.Message),
		)
		return upstreamErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("catalog api %s %s: decode response: %w", method, path, err)
	}

	return nil
}

func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return strings.TrimSpace(string(raw))
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
