// Package stratz is a small GraphQL client for the STRATZ statistics API,
// covering hero constants and hero-versus-hero matchups.
package stratz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/heropick/pkg/metrics"
)

// DefaultURL is the public STRATZ GraphQL endpoint.
const DefaultURL = "https://api.stratz.com/graphql"

const (
	requestTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20
	defaultRetries = 3
	initialBackoff = time.Second
	maxBackoff     = 16 * time.Second
)

const heroesQuery = `{
  constants {
    heroes { id displayName shortName stats { attackType } }
    heroRoleType { id name }
  }
  heroStats { id roles }
}`

const matchupsQuery = `query HeroMatchups($heroId: Short!) {
  heroStats {
    heroVsHeroMatchup(heroId: $heroId) {
      advantage { with { heroId2 synergy } vs { heroId2 synergy } }
      disadvantage { with { heroId2 synergy } vs { heroId2 synergy } }
    }
  }
}`

// Client talks to the STRATZ GraphQL endpoint.
type Client struct {
	httpClient     *http.Client
	limiter        *rate.Limiter
	baseURL        string
	token          string
	userAgent      string
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// New creates a client. A token is required.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		httpClient:     &http.Client{Timeout: requestTimeout},
		limiter:        rate.NewLimiter(rate.Limit(1), 1),
		baseURL:        DefaultURL,
		userAgent:      "heropick/1.0",
		maxRetries:     defaultRetries,
		initialBackoff: initialBackoff,
		maxBackoff:     maxBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	if strings.TrimSpace(c.token) == "" {
		return nil, ErrMissingToken
	}
	return c, nil
}

// FetchHeroes returns every hero with its role names and attack type.
func (c *Client) FetchHeroes(ctx context.Context) ([]HeroInfo, error) {
	var resp heroesResponse
	if err := c.do(ctx, "heroes", gqlRequest{Query: heroesQuery}, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch heroes: %w", err)
	}
	if err := gqlErr(resp.Errors); err != nil {
		return nil, fmt.Errorf("failed to fetch heroes: %w", err)
	}
	if resp.Data == nil || resp.Data.Constants == nil {
		return nil, fmt.Errorf("%w: heroes: missing data.constants", ErrShape)
	}

	roleNames := make(map[int]string, len(resp.Data.Constants.HeroRoleType))
	for _, r := range resp.Data.Constants.HeroRoleType {
		roleNames[r.ID] = r.Name
	}
	rolesByHero := make(map[int][]string, len(resp.Data.HeroStats))
	for _, hs := range resp.Data.HeroStats {
		names := make([]string, 0, len(hs.Roles))
		for _, id := range hs.Roles {
			name, ok := roleNames[id]
			if !ok {
				name = fmt.Sprintf("Unknown(%d)", id)
			}
			names = append(names, name)
		}
		rolesByHero[hs.ID] = names
	}

	out := make([]HeroInfo, 0, len(resp.Data.Constants.Heroes))
	for _, h := range resp.Data.Constants.Heroes {
		if h.DisplayName == "" {
			continue
		}
		info := HeroInfo{
			ID:          h.ID,
			DisplayName: h.DisplayName,
			ShortName:   h.ShortName,
			Roles:       rolesByHero[h.ID],
		}
		if h.Stats != nil {
			info.AttackType = normalizeAttack(h.Stats.AttackType)
		}
		out = append(out, info)
	}
	return out, nil
}

// FetchMatchups returns the first advantage and disadvantage blocks for one
// hero.
func (c *Client) FetchMatchups(ctx context.Context, heroID int) (RawMatchups, error) {
	req := gqlRequest{Query: matchupsQuery, Variables: map[string]any{"heroId": heroID}}
	var resp matchupsResponse
	if err := c.do(ctx, "matchups", req, &resp); err != nil {
		return RawMatchups{}, fmt.Errorf("failed to fetch matchups for hero %d: %w", heroID, err)
	}
	if err := gqlErr(resp.Errors); err != nil {
		return RawMatchups{}, fmt.Errorf("failed to fetch matchups for hero %d: %w", heroID, err)
	}
	if resp.Data == nil || resp.Data.HeroStats == nil || resp.Data.HeroStats.HeroVsHeroMatchup == nil {
		return RawMatchups{}, fmt.Errorf("%w: hero %d: missing heroVsHeroMatchup", ErrShape, heroID)
	}
	m := resp.Data.HeroStats.HeroVsHeroMatchup
	if len(m.Advantage) == 0 || len(m.Disadvantage) == 0 {
		return RawMatchups{}, fmt.Errorf("%w: hero %d: empty advantage or disadvantage", ErrShape, heroID)
	}
	return RawMatchups{HeroID: heroID, Advantage: m.Advantage[0], Disadvantage: m.Disadvantage[0]}, nil
}

// do posts a GraphQL request with rate limiting and retries on transport
// errors, 429 and 5xx.
func (c *Client) do(ctx context.Context, op string, body gqlRequest, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	var lastErr error
	backoff := c.initialBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			metrics.RecordUpstreamRetry()
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		wait, err := c.attempt(ctx, op, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if wait < 0 || attempt == c.maxRetries {
			break
		}
		if wait == 0 {
			wait = backoff
		}
		backoff = min(backoff*2, c.maxBackoff)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return lastErr
}

// attempt performs one request. A negative wait marks the error as final; a
// positive one is the delay the server asked for.
func (c *Client) attempt(ctx context.Context, op string, payload []byte, out any) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return -1, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := float64(time.Since(start).Milliseconds())
	if err != nil {
		metrics.RecordUpstreamRequest(op, "error", latency)
		if ctx.Err() != nil {
			return -1, ctx.Err()
		}
		return 0, fmt.Errorf("%w: request failed: %w", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordUpstreamRequest(op, strconv.Itoa(resp.StatusCode), latency)

	switch {
	case resp.StatusCode == http.StatusOK:
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return 0, fmt.Errorf("%w: read body: %w", ErrUpstream, err)
		}
		if err := json.Unmarshal(data, out); err != nil {
			return -1, fmt.Errorf("%w: %w", ErrShape, err)
		}
		return 0, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return retryAfter(resp.Header.Get("Retry-After")), fmt.Errorf("%w: HTTP %d", ErrUpstream, resp.StatusCode)
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return -1, fmt.Errorf("%w: HTTP %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
}

func retryAfter(h string) time.Duration {
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(h); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

func gqlErr(errs []gqlError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return fmt.Errorf("%w: %s", ErrUpstream, strings.Join(msgs, "; "))
}

func normalizeAttack(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "melee":
		return "Melee"
	case "ranged":
		return "Ranged"
	}
	return ""
}
