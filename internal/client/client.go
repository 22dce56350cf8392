// Package client 是 chef-express HTTP API 的客戶端
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chef-express/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// APIError 伺服器回傳的非 2xx 響應
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("chef-express API error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("chef-express API error %d: %s", e.Status, e.Message)
}

// Client chef-express API 客戶端
type Client struct {
	client *resty.Client
}

// New 創建客戶端，timeout <= 0 時不設定逾時
func New(baseURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "chefctl")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{client: client}
}

// Search 以冰箱食材搜尋食譜
func (c *Client) Search(ctx context.Context, ingredients []common.Ingredient) (common.Ranking, error) {
	if ingredients == nil {
		ingredients = []common.Ingredient{}
	}

	var ranking common.Ranking
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", common.GenerateUUID()).
		SetBody(ingredients).
		SetResult(&ranking).
		SetError(&common.ErrorResponse{}).
		Post("/api/v1/recipes/search")
	if err != nil {
		return common.Ranking{}, fmt.Errorf("failed to send search request: %w", err)
	}
	if resp.IsError() {
		return common.Ranking{}, apiError(resp)
	}

	common.LogDebug("Search response received",
		zap.Int("status", resp.StatusCode()),
		zap.Int("results", len(ranking.Results)),
		zap.Duration("latency", resp.Time()),
	)
	return ranking, nil
}

// Recipe 取得單一食譜
func (c *Client) Recipe(ctx context.Context, id string) (*common.Recipe, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, common.NewValidationError("recipe id is required")
	}

	var recipe common.Recipe
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", common.GenerateUUID()).
		SetResult(&recipe).
		SetError(&common.ErrorResponse{}).
		Get("/api/v1/recipes/" + url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("failed to send recipe request: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &recipe, nil
}

// apiError 將錯誤響應轉為 APIError
func apiError(resp *resty.Response) error {
	apiErr := &APIError{Status: resp.StatusCode()}
	if body, ok := resp.Error().(*common.ErrorResponse); ok && body.Code != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	} else {
		apiErr.Message = strings.TrimSpace(resp.String())
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode())
		}
	}
	return apiErr
}

// IsNotFound 判斷是否為 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
