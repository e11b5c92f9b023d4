package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kjannette/sidebar-pricebot/internal/httputil"
	"github.com/kjannette/sidebar-pricebot/internal/models"
)

const (
	CoinGeckoSource  = "coingecko"
	CoinGeckoBaseURL = "https://api.coingecko.com/api/v3"
)

// CoinGeckoClient fetches spot prices with 24h change from CoinGecko.
type CoinGeckoClient struct {
	baseClient
	lookup *SymbolLookup
	retry  httputil.RetryConfig
	log    zerolog.Logger
}

// NewCoinGeckoClient creates a client. A non-empty key is sent as the
// pro API header.
func NewCoinGeckoClient(key string, lookup *SymbolLookup, log zerolog.Logger, options ...Option) *CoinGeckoClient {
	if key != "" {
		options = append([]Option{WithHeader(http.Header{"x-cg-pro-api-key": {key}})}, options...)
	}
	if lookup == nil {
		lookup = NewSymbolLookup()
	}
	return &CoinGeckoClient{
		baseClient: newBaseClient(CoinGeckoSource, CoinGeckoBaseURL, options),
		lookup:     lookup,
		retry: httputil.RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   2 * time.Second,
			MaxDelay:    10 * time.Second,
		},
		log: log,
	}
}

// Lookup exposes the symbol table the client resolves against.
func (c *CoinGeckoClient) Lookup() *SymbolLookup { return c.lookup }

type simplePrice struct {
	USD          *float64 `json:"usd"`
	USD24hChange *float64 `json:"usd_24h_change"`
}

// GetPrices returns a RawQuote for every symbol CoinGecko can price.
// Symbols that do not resolve, or that come back without a usd price, are
// left out of the result. A missing change is read as zero.
func (c *CoinGeckoClient) GetPrices(ctx context.Context, symbols []string) (map[string]models.RawQuote, error) {
	out := make(map[string]models.RawQuote, len(symbols))

	bySymbol := make(map[string][]string, len(symbols))
	ids := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		sym = strings.ToUpper(sym)
		id, ok := c.lookup.ID(sym)
		if !ok {
			c.log.Debug().Str("symbol", sym).Msg("symbol not in lookup")
			continue
		}
		if _, seen := bySymbol[id]; !seen {
			ids = append(ids, id)
		}
		bySymbol[id] = append(bySymbol[id], sym)
	}
	if len(ids) == 0 {
		return out, nil
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", "usd")
	query.Set("include_24hr_change", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/simple/price?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	res, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var body map[string]simplePrice
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, &ParseError{Source: c.source, Field: "body", Err: err}
	}

	for id, p := range body {
		if p.USD == nil {
			continue
		}
		q := models.RawQuote{USD: *p.USD}
		if p.USD24hChange != nil {
			q.USD24hChange = *p.USD24hChange
		}
		for _, sym := range bySymbol[id] {
			out[sym] = q
		}
	}
	return out, nil
}

type coinListEntry struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
}

// LoadCoinList merges CoinGecko's full coin list into the lookup and
// returns how many symbols were added. The first id listed for a symbol
// wins. This is a startup call and retries on 5xx.
func (c *CoinGeckoClient) LoadCoinList(ctx context.Context) (int, error) {
	res, err := httputil.Do(ctx, c.httpClient, c.retry, c.log, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/coins/list", http.NoBody)
		if err != nil {
			return nil, err
		}
		for key, values := range c.header {
			req.Header[key] = values
		}
		return req, nil
	})
	if err != nil {
		return 0, &FetchError{Source: c.source, Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return 0, &FetchError{Source: c.source, StatusCode: res.StatusCode}
	}

	var list []coinListEntry
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		return 0, &ParseError{Source: c.source, Field: "coins list", Err: err}
	}

	entries := make(map[string]string, len(list))
	for _, e := range list {
		sym := strings.ToUpper(e.Symbol)
		if _, ok := entries[sym]; ok {
			continue
		}
		entries[sym] = e.ID
	}
	return c.lookup.Merge(entries), nil
}
