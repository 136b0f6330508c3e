package priceapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cashwell/cashwell/internal/domain"
	"github.com/cashwell/cashwell/internal/infrastructure/metrics"
)

const (
	coingeckoURL   = "https://api.coingecko.com/api/v3/simple/price"
	dexscreenerURL = "https://api.dexscreener.com/latest/dex/tokens"

	requestTimeout = 10 * time.Second
	maxElapsed     = 30 * time.Second
)

// Client resolves crypto prices in USD. CoinGecko is queried first with
// the lowercased symbol as coin id; unlisted tokens fall back to
// DexScreener pair data.
type Client struct {
	httpClient *http.Client
	logger     zerolog.Logger
	metrics    *metrics.Metrics

	coingeckoBase   string
	dexscreenerBase string
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURLs overrides the upstream endpoints.
func WithBaseURLs(coingecko, dexscreener string) Option {
	return func(c *Client) {
		c.coingeckoBase = coingecko
		c.dexscreenerBase = dexscreener
	}
}

// WithMetrics records fetch counters and durations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a price client.
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient:      &http.Client{Timeout: requestTimeout},
		logger:          logger,
		coingeckoBase:   coingeckoURL,
		dexscreenerBase: dexscreenerURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Price returns the USD price for a symbol. It returns
// domain.ErrPriceUnavailable when neither source knows the token.
func (c *Client) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if price, err := c.fromCoinGecko(ctx, symbol); err == nil {
		return price, nil
	} else {
		c.logger.Debug().Err(err).Str("symbol", symbol).Msg("coingecko lookup failed")
	}

	price, err := c.fromDexScreener(ctx, symbol)
	if err != nil {
		c.logger.Debug().Err(err).Str("symbol", symbol).Msg("dexscreener lookup failed")
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrPriceUnavailable, symbol)
	}
	return price, nil
}

func (c *Client) fromCoinGecko(ctx context.Context, symbol string) (decimal.Decimal, error) {
	id := strings.ToLower(symbol)
	url := fmt.Sprintf("%s?ids=%s&vs_currencies=usd", c.coingeckoBase, id)

	var body map[string]struct {
		USD decimal.Decimal `json:"usd"`
	}
	if err := c.getJSON(ctx, "coingecko", url, &body); err != nil {
		return decimal.Zero, err
	}

	entry, ok := body[id]
	if !ok || entry.USD.IsZero() {
		return decimal.Zero, fmt.Errorf("coin %q not listed", id)
	}
	return entry.USD, nil
}

func (c *Client) fromDexScreener(ctx context.Context, symbol string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s", c.dexscreenerBase, symbol)

	var body struct {
		Pairs []struct {
			PriceUSD decimal.Decimal `json:"priceUsd"`
		} `json:"pairs"`
	}
	if err := c.getJSON(ctx, "dexscreener", url, &body); err != nil {
		return decimal.Zero, err
	}

	if len(body.Pairs) == 0 || body.Pairs[0].PriceUSD.IsZero() {
		return decimal.Zero, fmt.Errorf("no pairs for token %q", symbol)
	}
	return body.Pairs[0].PriceUSD, nil
}

// getJSON fetches a URL with retries on transient failures and decodes
// the JSON body into out.
func (c *Client) getJSON(ctx context.Context, source, url string, out any) error {
	start := time.Now()
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return backoff.Permanent(fmt.Errorf("decode %s response: %w", source, err))
			}
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("%s returned status %d", source, resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("%s returned status %d", source, resp.StatusCode))
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxElapsed
	err := backoff.Retry(operation, backoff.WithContext(bo, ctx))

	if c.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		c.metrics.PriceFetches.WithLabelValues(source, status).Inc()
		c.metrics.PriceFetchSeconds.WithLabelValues(source).Observe(time.Since(start).Seconds())
	}

	return err
}
