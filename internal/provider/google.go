// Package provider implements external rate providers for fetching currency exchange rates.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var _ RatesProvider = (*GoogleCalculatorProvider)(nil)

// GoogleCalculatorProvider fetches rates from the Google calculator quote endpoint.
//
// The endpoint answers queries of the form "1USD=?EUR" with a loosely
// formatted JavaScript object literal whose keys are bare identifiers,
// e.g. {lhs: "1 USD = 0.84 Euros",rhs: "0.84 Euros",error: "",icc: "true"}.
// The payload is repaired into valid JSON before decoding.
type GoogleCalculatorProvider struct {
	baseURL string
	client  *http.Client
}

// NewGoogleCalculatorProvider creates a new GoogleCalculatorProvider.
func NewGoogleCalculatorProvider(baseURL string, timeoutSec int) *GoogleCalculatorProvider {
	if baseURL == "" {
		baseURL = "https://www.google.com/ig/calculator"
	}
	return &GoogleCalculatorProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

// quoteURL forms the endpoint URL asking for the value of 1 unit of base in quote.
func (p *GoogleCalculatorProvider) quoteURL(base, quote string) string {
	q := url.Values{}
	q.Set("hl", "en")
	q.Set("q", fmt.Sprintf("1%s=?%s", base, quote))
	return p.baseURL + "?" + q.Encode()
}

// calculator response structure, after payload repair
type calculatorResponse struct {
	Lhs   string `json:"lhs"`
	Rhs   string `json:"rhs"`
	Error string `json:"error"`
	Icc   string `json:"icc"`
}

// bareKeys matches the four unquoted identifiers the endpoint emits as keys.
var bareKeys = regexp.MustCompile(`\b(lhs|rhs|error|icc)\s*:`)

// repairPayload rewrites the endpoint's bare object keys into quoted form so
// the payload can be decoded as JSON. Pure string-to-string normalization.
func repairPayload(raw string) string {
	return bareKeys.ReplaceAllString(raw, `"${1}":`)
}

// GetRate fetches the exchange rate for the given base/quote currency pair.
// The result is the value of 1 unit of base expressed in quote.
func (p *GoogleCalculatorProvider) GetRate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	reqURL := p.quoteURL(base, quote)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: request creation: %v", ErrFetchFailed, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close
	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("%w: quote endpoint returned status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: reading body: %v", ErrFetchFailed, err)
	}

	var result calculatorResponse
	if err := json.Unmarshal([]byte(repairPayload(string(body))), &result); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// The endpoint signals success with an empty error field or the literal "0".
	// Any other value is opaque failure content and is never interpreted.
	if result.Error != "" && result.Error != "0" {
		return decimal.Decimal{}, fmt.Errorf("%w: upstream error %q for %s/%s", ErrUnknownRate, result.Error, base, quote)
	}

	// rhs carries the rate as a leading decimal followed by a unit label, e.g. "0.84 Euros".
	fields := strings.Fields(result.Rhs)
	if len(fields) == 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: empty rhs field", ErrMalformedResponse)
	}
	rate, err := decimal.NewFromString(fields[0])
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: rhs %q has no leading decimal", ErrMalformedResponse, result.Rhs)
	}

	return rate, nil
}
