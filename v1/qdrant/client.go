package qdrant

import (
	"context"
	"fmt"
	"log"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// Client wraps the official Qdrant Go client and adapts it to the
// executor seam: compiled wire queries go in, normalized rows come out.
type Client struct {
	api     *qdrant.Client
	cfg     *Config
	started bool
}

// NewClient constructs a Client and validates connectivity with an
// immediate health check, failing fast if the service is unreachable.
//
// Example:
//
//	client, err := qdrant.NewClient(qdrant.FromEndpoint("localhost"))
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log.Printf("[Qdrant] Connecting to endpoint: %s:%d", cfg.Endpoint, cfg.Port)

	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	c := &Client{
		api:     api,
		cfg:     cfg,
		started: true,
	}

	if err := c.healthCheck(); err != nil {
		return nil, fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Println("[Qdrant] Client connected successfully")
	return c, nil
}

// healthCheck verifies the availability of the Qdrant service. Lightweight
// and fast; used during startup and readiness probes.
func (c *Client) healthCheck() error {
	if !c.started || c.api == nil {
		return fmt.Errorf("[Qdrant] client not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Printf("[Qdrant] Health check passed (title=%s, version=%s, endpoint=%s)", resp.Title, resp.Version, c.cfg.Endpoint)
	return nil
}

// Ping reports whether the backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c.api == nil {
		return fmt.Errorf("[Qdrant] client not initialized")
	}
	_, err := c.api.HealthCheck(ctx)
	return err
}

// API returns the underlying Qdrant SDK client for low-level operations.
func (c *Client) API() *qdrant.Client {
	return c.api
}

// Close gracefully shuts down the Qdrant client.
func (c *Client) Close() error {
	if !c.started {
		return nil
	}
	log.Println("[Qdrant] closing client")
	return c.api.Close()
}
