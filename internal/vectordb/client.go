// Package vectordb stores bug embeddings in Qdrant.
package vectordb

import (
	"fmt"
	"strings"

	"github.com/qdrant/go-client/qdrant"

	"github.com/Kavirubc/rca-assist/internal/config"
)

const defaultGRPCPort = 6334

// Client wraps Qdrant operations
type Client struct {
	qdrant   *qdrant.Client
	distance string
}

// NewClient creates a new Qdrant client. distance is "euclid" or "cosine"
// and decides how search scores are reported.
func NewClient(cfg *config.QdrantConfig, distance string) (*Client, error) {
	host, port := parseHostPort(cfg.URL)

	// Qdrant Cloud only accepts TLS
	useTLS := strings.HasPrefix(cfg.URL, "https://") ||
		strings.Contains(host, "qdrant.io") || strings.Contains(host, "qdrant.cloud")

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Qdrant: %w", err)
	}

	return &Client{qdrant: client, distance: distance}, nil
}

// parseHostPort extracts host and port from URL string
func parseHostPort(url string) (string, int) {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimSuffix(url, "/")

	if idx := strings.LastIndex(url, ":"); idx != -1 {
		host := url[:idx]
		var port int
		_, _ = fmt.Sscanf(url[idx+1:], "%d", &port)
		if port == 0 {
			port = defaultGRPCPort
		}
		return host, port
	}

	return url, defaultGRPCPort
}

// Close closes the connection
func (c *Client) Close() error {
	if c.qdrant != nil {
		return c.qdrant.Close()
	}
	return nil
}
