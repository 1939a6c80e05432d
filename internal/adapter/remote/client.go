// Package remote is the deprecated fallback client for the previous
// generation of the Phoenix API. It fetches raw JSON over HTTP and writes
// every successful response through to the cache under the legacy
// endpoint-path keys with the legacy per-endpoint TTLs. New code reads from
// Postgres through the phoenix service instead.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tosdr/phoenix/internal/cache"
	"github.com/tosdr/phoenix/internal/config"
	"github.com/tosdr/phoenix/internal/domain"
)

// Legacy per-endpoint cache lifetimes. The odd service-by-name value is six
// months expressed in seconds, inherited from the previous stack and kept
// for key-compatibility of behavior.
const (
	EntityTTL        = 30 * 24 * time.Hour
	ServiceByIDTTL   = 12 * time.Hour
	ServiceByNameTTL = 15778476 * time.Second
	TopicListTTL     = 24 * time.Hour
	ListTTL          = time.Hour
)

const userAgent = "CrispCMS ToS;DR"

// Tiers holds one cache per legacy TTL class.
type Tiers struct {
	Entities      *cache.Cache // single point/case/topic by id
	ServiceByID   *cache.Cache
	ServiceByName *cache.Cache
	TopicList     *cache.Cache
	Lists         *cache.Cache // service and case lists
}

// NewTiers builds the legacy tier set with a shared capacity.
func NewTiers(capacity, numShards int) Tiers {
	return Tiers{
		Entities:      cache.New(capacity, numShards, EntityTTL),
		ServiceByID:   cache.New(capacity, numShards, ServiceByIDTTL),
		ServiceByName: cache.New(capacity, numShards, ServiceByNameTTL),
		TopicList:     cache.New(capacity, numShards, TopicListTTL),
		Lists:         cache.New(capacity, numShards, ListTTL),
	}
}

// Client fetches from the legacy Phoenix HTTP API.
//
// Unlike the store read path, a failed cache write here is fatal: the legacy
// surface treats the cache as its system of record between fetches, so a
// response that could not be persisted is reported as an error rather than
// returned.
type Client struct {
	baseURL    string
	endpoint   string
	httpClient *http.Client
	tiers      Tiers
	log        *slog.Logger
}

// NewClient creates a legacy API client. cfg.URL is the scheme://host
// prefix, cfg.APIEndpoint the path prefix shared by request URLs and cache
// keys.
func NewClient(cfg config.PhoenixConfig, tiers Tiers, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.URL,
		endpoint:   cfg.APIEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tiers:      tiers,
		log:        logger.With("adapter", "remote"),
	}
}

// envelope is the part of every legacy response the client inspects. The
// error field is false on success and carries a message otherwise; name is
// only present on single-service responses.
type envelope struct {
	Error json.RawMessage `json:"error"`
	Name  string          `json:"name"`
}

// GetService fetches a service by id. The response is written under both the
// id key and the lowercased name key, so later by-name reads hit without a
// fetch. Force bypasses the cache read, never the write.
func (c *Client) GetService(ctx context.Context, id int64, force bool) (json.RawMessage, error) {
	key := fmt.Sprintf("%s/services/id/%d", c.endpoint, id)
	if !force {
		if raw, ok := c.tiers.ServiceByID.GetRaw(key); ok {
			return raw, nil
		}
	}

	raw, env, err := c.fetch(ctx, fmt.Sprintf("/services/%d", id))
	if err != nil {
		return nil, err
	}

	if err := c.cacheSet(c.tiers.ServiceByID, key, raw); err != nil {
		return nil, err
	}
	nameKey := c.endpoint + "/services/name/" + strings.ToLower(env.Name)
	if err := c.cacheSet(c.tiers.ServiceByName, nameKey, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetServiceByName returns the by-name snapshot written by a previous
// GetService. The legacy API has no by-name endpoint; a missing snapshot is
// domain.ErrNotFound.
func (c *Client) GetServiceByName(ctx context.Context, name string) (json.RawMessage, error) {
	key := c.endpoint + "/services/name/" + strings.ToLower(name)
	if raw, ok := c.tiers.ServiceByName.GetRaw(key); ok {
		return raw, nil
	}
	return nil, fmt.Errorf("remote service by name %q: %w", name, domain.ErrNotFound)
}

// GetPoint fetches a point by id.
func (c *Client) GetPoint(ctx context.Context, id int64, force bool) (json.RawMessage, error) {
	return c.getEntity(ctx, "points", id, force)
}

// GetCase fetches a case by id.
func (c *Client) GetCase(ctx context.Context, id int64, force bool) (json.RawMessage, error) {
	return c.getEntity(ctx, "cases", id, force)
}

// GetTopic fetches a topic by id.
func (c *Client) GetTopic(ctx context.Context, id int64, force bool) (json.RawMessage, error) {
	return c.getEntity(ctx, "topics", id, force)
}

// ListServices fetches the full service list.
func (c *Client) ListServices(ctx context.Context, force bool) (json.RawMessage, error) {
	return c.getList(ctx, "services", c.tiers.Lists, force)
}

// ListCases fetches the full case list.
func (c *Client) ListCases(ctx context.Context, force bool) (json.RawMessage, error) {
	return c.getList(ctx, "cases", c.tiers.Lists, force)
}

// ListTopics fetches the full topic list.
func (c *Client) ListTopics(ctx context.Context, force bool) (json.RawMessage, error) {
	return c.getList(ctx, "topics", c.tiers.TopicList, force)
}

func (c *Client) getEntity(ctx context.Context, kind string, id int64, force bool) (json.RawMessage, error) {
	key := fmt.Sprintf("%s/%s/id/%d", c.endpoint, kind, id)
	if !force {
		if raw, ok := c.tiers.Entities.GetRaw(key); ok {
			return raw, nil
		}
	}

	raw, _, err := c.fetch(ctx, fmt.Sprintf("/%s/%d", kind, id))
	if err != nil {
		return nil, err
	}

	if err := c.cacheSet(c.tiers.Entities, key, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) getList(ctx context.Context, kind string, tier *cache.Cache, force bool) (json.RawMessage, error) {
	key := c.endpoint + "/" + kind
	if !force {
		if raw, ok := tier.GetRaw(key); ok {
			return raw, nil
		}
	}

	raw, _, err := c.fetch(ctx, "/"+kind)
	if err != nil {
		return nil, err
	}

	if err := c.cacheSet(tier, key, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// fetch performs one GET against the legacy API. There is no retry: the
// caller either gets the body with a non-truthy error field or
// domain.ErrRemoteFetch.
func (c *Client) fetch(ctx context.Context, path string) (json.RawMessage, *envelope, error) {
	reqURL := c.baseURL + c.endpoint + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("remote %s: create request: %w", path, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "remote request failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, nil, fmt.Errorf("remote %s: %w: %w", path, domain.ErrRemoteFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("remote %s: read body: %w: %w", path, domain.ErrRemoteFetch, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, nil, fmt.Errorf("remote %s: decode: %w: %w", path, domain.ErrRemoteFetch, err)
	}
	if msg, truthy := truthyError(env.Error); truthy {
		return nil, nil, fmt.Errorf("remote %s: api error %s: %w", path, msg, domain.ErrRemoteFetch)
	}

	c.log.DebugContext(ctx, "remote fetch",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
	)

	return body, &env, nil
}

func (c *Client) cacheSet(tier *cache.Cache, key string, raw []byte) error {
	if err := tier.SetRaw(key, raw); err != nil {
		return fmt.Errorf("remote cache %s: %w: %w", key, domain.ErrCacheWrite, err)
	}
	return nil
}

// truthyError reports whether the legacy error field carries a failure.
// The field is false (or absent/null) on success and a message, code or
// object on failure.
func truthyError(raw json.RawMessage) (string, bool) {
	s := strings.TrimSpace(string(raw))
	switch s {
	case "", "null", "false", `""`, "0":
		return "", false
	}
	return s, true
}
