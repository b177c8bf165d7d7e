// Package marketdata fetches price history and company fundamentals from
// Yahoo Finance. It is the external collaborator the calculation engine
// depends on for live data; everything it returns is plain values.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"costofcapital/pkg/models"
)

const (
	chartURL   = "https://query1.finance.yahoo.com/v8/finance/chart/%s"
	profileURL = "https://finance.yahoo.com/quote/%s/profile/"

	defaultTimeout = 15 * time.Second
)

// Client talks to Yahoo Finance over plain HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string // overrides chartURL host in tests
}

// NewClient creates a client with sane timeouts.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientWithBase creates a client whose chart requests go to baseURL.
// Used by tests to point at a fixture server.
func NewClientWithBase(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// chartResponse mirrors the slice of the chart API payload we consume.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				Adjclose []struct {
					Adjclose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// FetchPriceHistory downloads dated closes for a symbol. rng and interval use
// Yahoo's notation ("10y", "1mo"); both adjusted and raw closes are kept so
// the beta estimator can apply its preference.
func (c *Client) FetchPriceHistory(ctx context.Context, symbol, rng, interval string) (models.PriceHistory, error) {
	base := c.baseURL
	if base == "" {
		base = fmt.Sprintf(chartURL, url.PathEscape(symbol))
	} else {
		base = fmt.Sprintf("%s/v8/finance/chart/%s", base, url.PathEscape(symbol))
	}

	u, err := url.Parse(base)
	if err != nil {
		return models.PriceHistory{}, fmt.Errorf("marketdata: parse url: %w", err)
	}
	q := u.Query()
	q.Set("range", rng)
	q.Set("interval", interval)
	q.Set("events", "div,split")
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String(), "application/json")
	if err != nil {
		return models.PriceHistory{}, err
	}

	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.PriceHistory{}, fmt.Errorf("marketdata: decode chart response: %w", err)
	}
	if resp.Chart.Error != nil {
		return models.PriceHistory{}, fmt.Errorf("marketdata: chart API error: %v", resp.Chart.Error)
	}
	if len(resp.Chart.Result) == 0 {
		return models.PriceHistory{}, fmt.Errorf("marketdata: no chart data for %s", symbol)
	}

	result := resp.Chart.Result[0]
	history := models.PriceHistory{Symbol: symbol}

	var closes, adjCloses []*float64
	if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}
	if len(result.Indicators.Adjclose) > 0 {
		adjCloses = result.Indicators.Adjclose[0].Adjclose
	}

	for i, ts := range result.Timestamp {
		point := models.PricePoint{Date: time.Unix(ts, 0).UTC()}
		if i < len(closes) {
			point.Close = closes[i]
		}
		if i < len(adjCloses) {
			point.AdjClose = adjCloses[i]
		}
		if point.Close == nil && point.AdjClose == nil {
			continue // market holiday rows come back as nulls
		}
		history.Points = append(history.Points, point)
	}

	if len(history.Points) == 0 {
		return models.PriceHistory{}, fmt.Errorf("marketdata: empty price series for %s", symbol)
	}
	return history, nil
}

// FetchCompanyInfo scrapes the quote profile page for sector, industry,
// market cap and long name. Yahoo embeds the fundamentals as JSON in a
// script tag; the visible spans serve as a fallback.
func (c *Client) FetchCompanyInfo(ctx context.Context, ticker string) (models.CompanyInfo, error) {
	target := fmt.Sprintf(profileURL, url.PathEscape(ticker))
	if c.baseURL != "" {
		target = fmt.Sprintf("%s/quote/%s/profile/", c.baseURL, url.PathEscape(ticker))
	}

	body, err := c.get(ctx, target, "text/html")
	if err != nil {
		return models.CompanyInfo{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return models.CompanyInfo{}, fmt.Errorf("marketdata: parse profile page: %w", err)
	}

	info := models.CompanyInfo{Ticker: strings.ToUpper(ticker)}

	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		content := script.Text()
		if !strings.Contains(content, "assetProfile") {
			return true
		}
		if parsed, ok := parseEmbeddedProfile(content); ok {
			if info.Sector == "" {
				info.Sector = parsed.Sector
			}
			if info.Industry == "" {
				info.Industry = parsed.Industry
			}
			if info.MarketCap == 0 {
				info.MarketCap = parsed.MarketCap
			}
			if info.LongName == "" {
				info.LongName = parsed.LongName
			}
			return false
		}
		return true
	})

	// Visible-markup fallback for sector/industry.
	if info.Sector == "" {
		info.Sector = strings.TrimSpace(doc.Find("span[data-test='SECTOR'], a[data-ylk*='sector']").First().Text())
	}
	if info.Industry == "" {
		info.Industry = strings.TrimSpace(doc.Find("span[data-test='INDUSTRY'], a[data-ylk*='industry']").First().Text())
	}
	if info.LongName == "" {
		info.LongName = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	if info.Sector == "" && info.Industry == "" && info.MarketCap == 0 {
		return models.CompanyInfo{}, fmt.Errorf("marketdata: no profile data for %s", ticker)
	}
	return info, nil
}

// parseEmbeddedProfile digs the profile fields out of the JSON blob Yahoo
// ships inside a script tag. The blob is large; only the brace-balanced
// object is decoded.
func parseEmbeddedProfile(content string) (models.CompanyInfo, bool) {
	start := strings.Index(content, "{")
	if start < 0 {
		return models.CompanyInfo{}, false
	}
	raw := balancedJSON(content[start:])
	if raw == "" {
		return models.CompanyInfo{}, false
	}

	var blob map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		return models.CompanyInfo{}, false
	}

	var info models.CompanyInfo
	walk(blob, func(key string, value interface{}) {
		switch key {
		case "sector":
			if s, ok := value.(string); ok && info.Sector == "" {
				info.Sector = s
			}
		case "industry":
			if s, ok := value.(string); ok && info.Industry == "" {
				info.Industry = s
			}
		case "longName":
			if s, ok := value.(string); ok && info.LongName == "" {
				info.LongName = s
			}
		case "marketCap":
			switch v := value.(type) {
			case float64:
				if info.MarketCap == 0 {
					info.MarketCap = v
				}
			case map[string]interface{}:
				if raw, ok := v["raw"].(float64); ok && info.MarketCap == 0 {
					info.MarketCap = raw
				}
			}
		}
	})

	found := info.Sector != "" || info.Industry != "" || info.MarketCap != 0
	return info, found
}

// balancedJSON returns the first brace-balanced prefix of s, ignoring braces
// inside string literals.
func balancedJSON(s string) string {
	depth := 0
	inString := false
	escaped := false
	for i, r := range s {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[:i+1]
				}
			}
		}
	}
	return ""
}

// walk visits every key/value pair in a decoded JSON tree.
func walk(node interface{}, visit func(key string, value interface{})) {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, child := range v {
			visit(k, child)
			walk(child, visit)
		}
	case []interface{}:
		for _, child := range v {
			walk(child, visit)
		}
	}
}

func (c *Client) get(ctx context.Context, target, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("marketdata: create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("marketdata: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("marketdata: unexpected status %d from %s", resp.StatusCode, target)
	}
	return io.ReadAll(resp.Body)
}
