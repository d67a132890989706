package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// YahooProvider reads daily bars from the Yahoo Finance v8 chart endpoint.
type YahooProvider struct {
	baseURL string
	cli     *http.Client
}

// NewYahooProvider builds a provider against baseURL (empty means the public
// endpoint) with a bounded request timeout.
func NewYahooProvider(baseURL string, timeout time.Duration) *YahooProvider {
	if baseURL == "" {
		baseURL = "https://query2.finance.yahoo.com"
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &YahooProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		cli:     &http.Client{Timeout: timeout},
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// FetchDailyBars returns the symbol's daily bars over [start, end], oldest
// first. An unknown symbol maps to ErrSymbolNotFound.
func (p *YahooProvider) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrSymbolNotFound
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		p.baseURL, symbol, start.Unix(), end.AddDate(0, 0, 1).Unix())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "bettero-app/1.0")

	resp, err := p.cli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrSymbolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: http %d", symbol, resp.StatusCode)
	}

	var raw chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", symbol, err)
	}
	if len(raw.Chart.Result) == 0 || len(raw.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrSymbolNotFound
	}

	r := raw.Chart.Result[0]
	q := r.Indicators.Quote[0]

	bars := make([]Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(q.Close) || q.Close[i] <= 0 {
			continue // market holiday or missing tick
		}
		day := time.Unix(ts, 0).UTC()
		bars = append(bars, Bar{
			Date:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Open:   decimal.NewFromFloat(q.Open[i]).Round(2),
			High:   decimal.NewFromFloat(q.High[i]).Round(2),
			Low:    decimal.NewFromFloat(q.Low[i]).Round(2),
			Close:  decimal.NewFromFloat(q.Close[i]).Round(2),
			Volume: q.Volume[i],
		})
	}
	if len(bars) == 0 {
		return nil, ErrSymbolNotFound
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
