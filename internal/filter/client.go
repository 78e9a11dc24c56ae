package filter

import (
	"context"

	"github.com/tkingovr/interceptor/api"
)

// Client originates requests through an optional Manager it does not own.
type Client struct {
	manager *Manager
}

// NewClient creates a client with no manager set.
func NewClient() *Client {
	return &Client{}
}

// SetManager sets or replaces the manager. Passing nil unsets it.
func (c *Client) SetManager(m *Manager) {
	c.manager = m
}

// Manager returns the current manager, or nil.
func (c *Client) Manager() *Manager {
	return c.manager
}

// Send submits req through the manager. Without a manager it does nothing.
func (c *Client) Send(ctx context.Context, req api.Request) {
	if c.manager == nil {
		return
	}
	c.manager.Submit(ctx, req)
}
