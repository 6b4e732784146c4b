package search

import (
	"context"
)

// NewDummyClient is useful for testing purposes. It allows you to mock the search results.
func NewDummyClient(resultFunc func(ctx context.Context, query string) (string, error)) *Client {
	return &Client{
		Provider: "dummy",
		runFunc: func(ctx context.Context, client *Client, query string) (string, error) {
			return resultFunc(ctx, query)
		},
	}
}
