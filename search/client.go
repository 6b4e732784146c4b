// Package search provides a web search client that returns plain-text results
// suitable for embedding in model prompts.
package search

import (
	"context"
)

// Client represents a generic web search client that uses a function variable
// for provider-specific logic.
type Client struct {
	Provider string
	APIKey   string
	BaseURL  string

	// runFunc is the implementation for each provider
	runFunc func(ctx context.Context, client *Client, query string) (string, error)
}

// Run executes a search query and returns the results as free text.
// There is no guaranteed format; callers should treat the result as opaque text.
func (c *Client) Run(ctx context.Context, query string) (string, error) {
	return c.runFunc(ctx, c, query)
}

// SetRunFunc sets the search function for the client. This is used to override
// the default function to use a non standard provider.
func (c *Client) SetRunFunc(runFunc func(ctx context.Context, client *Client, query string) (string, error)) {
	c.runFunc = runFunc
}
