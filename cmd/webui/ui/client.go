package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the territorios HTTP API. The token is attached as a
// Bearer header on every call after login.
type Client struct {
	BaseURL string
	Token   string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: 10 * time.Second}}
}

type UserInfo struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"is_admin"`
}

type LoginResult struct {
	User        UserInfo `json:"user"`
	IsFirstUser bool     `json:"is_first_user"`
}

type Territory struct {
	ID                  uint     `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Region              string   `json:"region"`
	DoneRecently        bool     `json:"done_recently"`
	TimesWhereItWasDone []string `json:"times_where_it_was_done"`
	LeastEditedBy       []string `json:"least_edited_by"`
	UpdatedAt           string   `json:"updated_at"`
}

type TerritoryPage struct {
	Page       []Territory `json:"page"`
	NextCursor string      `json:"next_cursor"`
}

type Stats struct {
	TotalCount        int64 `json:"total_count"`
	DoneRecentlyCount int64 `json:"done_recently_count"`
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var ae apiError
		if json.NewDecoder(resp.Body).Decode(&ae) == nil && ae.Error != "" {
			return fmt.Errorf("%s", ae.Error)
		}
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Login(token string) (*LoginResult, error) {
	var res LoginResult
	if err := c.do(http.MethodPost, "/login", map[string]string{"token": token}, &res); err != nil {
		return nil, err
	}
	c.Token = token
	return &res, nil
}

func (c *Client) Territories(cursor string, pageSize int) (*TerritoryPage, error) {
	q := url.Values{}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if pageSize > 0 {
		q.Set("page_size", fmt.Sprintf("%d", pageSize))
	}
	var page TerritoryPage
	if err := c.do(http.MethodGet, "/territories?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Search(text string) ([]Territory, error) {
	var ts []Territory
	err := c.do(http.MethodGet, "/territories/search?q="+url.QueryEscape(text), nil, &ts)
	return ts, err
}

func (c *Client) Get(id uint) (*Territory, error) {
	var t Territory
	if err := c.do(http.MethodGet, fmt.Sprintf("/territories/get?id=%d", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) Stats() (*Stats, error) {
	var st Stats
	if err := c.do(http.MethodGet, "/territories/stats", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
