package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"ascended/pkg/common"
	"ascended/pkg/user"
)

const defaultTimeout = 15 * time.Second

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.SugaredLogger
}

// Client issues authenticated JSON calls against the Ascended API.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     *zap.SugaredLogger

	mu    sync.RWMutex
	token string
}

func New(opts Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		http:    opts.HTTPClient,
		log:     opts.Logger,
	}
	if c.timeout == 0 {
		c.timeout = defaultTimeout
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.log == nil {
		c.log = zap.S()
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Authenticated() bool {
	return c.Token() != ""
}

// Request sends body as JSON and decodes the reply into out when out is not nil.
// Non 2xx replies become *ServerError carrying the server message.
func (c *Client) Request(ctx context.Context, method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: can't encode request body: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("client: can't build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warnf("client: %s %s failed: %v", method, path, err)
		return &ServerError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := common.Msg{}
		if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil || msg.Message == "" {
			msg.Message = http.StatusText(resp.StatusCode)
		}
		c.log.Debugf("client: %s %s answered %d: %s", method, path, resp.StatusCode, msg.Message)
		return &ServerError{Status: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: can't decode %s %s response: %w", method, path, err)
	}
	return nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authReply struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// Login stores the issued token on success.
func (c *Client) Login(ctx context.Context, username, password string) (*user.User, error) {
	return c.auth(ctx, "/api/login", username, password)
}

func (c *Client) Register(ctx context.Context, username, password string) (*user.User, error) {
	return c.auth(ctx, "/api/register", username, password)
}

func (c *Client) auth(ctx context.Context, path, username, password string) (*user.User, error) {
	reply := new(authReply)
	if err := c.Request(ctx, http.MethodPost, path, credentials{username, password}, reply); err != nil {
		return nil, err
	}
	c.SetToken(reply.Token)
	return reply.User, nil
}

func (c *Client) Logout() {
	c.SetToken("")
}
