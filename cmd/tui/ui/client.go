package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to the taskboard HTTP API on behalf of the UI models.
type Client struct {
	BaseURL string
	Token   string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type Task struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	OwnerID     uint      `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TaskPage struct {
	Tasks []Task `json:"tasks"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

func (c *Client) Login(email, password string) (*LoginResult, error) {
	var resp LoginResult
	err := c.do(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, &resp)
	if err != nil {
		return nil, err
	}
	c.Token = resp.Token
	return &resp, nil
}

func (c *Client) Register(name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(http.MethodPost, "/auth/register", body, nil)
}

type TaskListQuery struct {
	Search string
	Status string
	Page   int
	All    bool // admin-only view across all owners
}

func (c *Client) ListTasks(q TaskListQuery) (*TaskPage, error) {
	path := "/tasks"
	if q.All {
		path = "/tasks/admin/all"
	}
	vals := url.Values{}
	if q.Search != "" {
		vals.Set("search", q.Search)
	}
	if q.Status != "" {
		vals.Set("status", q.Status)
	}
	if q.Page > 1 {
		vals.Set("page", strconv.Itoa(q.Page))
	}
	if enc := vals.Encode(); enc != "" {
		path += "?" + enc
	}
	var page TaskPage
	if err := c.do(http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateTask(title, description, status string) (*Task, error) {
	var t Task
	body := map[string]string{"title": title, "description": description, "status": status}
	if err := c.do(http.MethodPost, "/tasks", body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTask(id uint, title, description, status string) (*Task, error) {
	var t Task
	body := map[string]string{"title": title, "description": description, "status": status}
	if err := c.do(http.MethodPut, fmt.Sprintf("/tasks/%d", id), body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTask(id uint) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

func (c *Client) do(method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
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

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
