package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"skill_roadmap_backend/internal/model"
)

// Client REST后端的Go SDK，路径与 /api 路由一一对应
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: HTTP %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	var created model.User
	if err := c.post(ctx, "/users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, fmt.Sprintf("/users/%d", userID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) SaveChatMessage(ctx context.Context, msg *model.ChatMessage) (*model.ChatMessage, error) {
	var created model.ChatMessage
	if err := c.post(ctx, "/chat-messages", msg, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetChatMessages 返回该用户的消息，服务端按时间升序排好
func (c *Client) GetChatMessages(ctx context.Context, userID uint) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	if err := c.get(ctx, fmt.Sprintf("/chat-messages/%d", userID), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *Client) SaveRoadmap(ctx context.Context, roadmap *model.Roadmap) (*model.Roadmap, error) {
	var created model.Roadmap
	if err := c.post(ctx, "/roadmaps", roadmap, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetRoadmaps(ctx context.Context, userID uint) ([]model.Roadmap, error) {
	var roadmaps []model.Roadmap
	if err := c.get(ctx, fmt.Sprintf("/roadmaps/%d", userID), &roadmaps); err != nil {
		return nil, err
	}
	return roadmaps, nil
}

func (c *Client) SavePortfolio(ctx context.Context, portfolio *model.Portfolio) (*model.Portfolio, error) {
	var created model.Portfolio
	if err := c.post(ctx, "/portfolios", portfolio, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetPortfolios(ctx context.Context, userID uint) ([]model.Portfolio, error) {
	var portfolios []model.Portfolio
	if err := c.get(ctx, fmt.Sprintf("/portfolios/%d", userID), &portfolios); err != nil {
		return nil, err
	}
	return portfolios, nil
}
