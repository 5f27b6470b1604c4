package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"CryptoDash/internal/model"

	"github.com/tidwall/gjson"
)

// DefaultCMCBaseURL is the CoinMarketCap Pro API host.
const DefaultCMCBaseURL = "https://pro-api.coinmarketcap.com"

const (
	cmcQuotesPath = "/v1/cryptocurrency/quotes/latest"
	cmcKeyHeader  = "X-CMC_PRO_API_KEY"
)

// CMCFetcher implements Fetcher using the CoinMarketCap quotes/latest endpoint.
type CMCFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewCMCFetcher creates a new fetcher with optional proxy support.
// A zero timeout leaves requests unbounded; the poll context still cancels them.
func NewCMCFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *CMCFetcher {
	if baseURL == "" {
		baseURL = DefaultCMCBaseURL
	}
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CMCFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *CMCFetcher) Name() string { return "coinmarketcap" }

// FetchQuote requests one symbol and extracts data.<SYMBOL>.quote.USD.
func (f *CMCFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("cmc: empty symbol")
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	endpoint := f.BaseURL + cmcQuotesPath + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cmc [%s]: build request: %w", symbol, err)
	}
	req.Header.Set(cmcKeyHeader, f.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cmc [%s]: %w: %v", symbol, ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cmc [%s]: %w: read body: %v", symbol, ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("cmc [%s]: %w: status %d, body: %s", symbol, ErrNetwork, resp.StatusCode, truncate(body, 256))
	}

	return parseQuote(symbol, body)
}

func parseQuote(symbol string, body []byte) (*model.Quote, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("cmc [%s]: %w: invalid json", symbol, ErrMalformed)
	}
	usd := gjson.GetBytes(body, "data."+gjson.Escape(symbol)+".quote.USD")
	if !usd.IsObject() {
		return nil, fmt.Errorf("cmc [%s]: %w: missing data.%s.quote.USD", symbol, ErrMalformed, symbol)
	}

	price, err := numberField(usd, "price")
	if err != nil {
		return nil, fmt.Errorf("cmc [%s]: %w", symbol, err)
	}
	change, err := numberField(usd, "percent_change_24h")
	if err != nil {
		return nil, fmt.Errorf("cmc [%s]: %w", symbol, err)
	}
	volume, err := numberField(usd, "volume_24h")
	if err != nil {
		return nil, fmt.Errorf("cmc [%s]: %w", symbol, err)
	}

	return &model.Quote{
		Symbol:           symbol,
		Price:            price,
		PercentChange24h: change,
		Volume24h:        volume,
		FetchedAt:        time.Now(),
	}, nil
}

func numberField(obj gjson.Result, name string) (float64, error) {
	v := obj.Get(name)
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("%w: field %s is not a number (%s)", ErrMalformed, name, v.Type)
	}
	return v.Float(), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "...(truncated)"
}
