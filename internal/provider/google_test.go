package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "typical payload",
			raw:  `{lhs: "1 USD = 0.84 Euros",rhs: "0.84 Euros",error: "",icc: "true"}`,
			want: `{"lhs": "1 USD = 0.84 Euros","rhs": "0.84 Euros","error": "","icc": "true"}`,
		},
		{
			name: "error payload",
			raw:  `{lhs: "",rhs: "",error: "4",icc: "false"}`,
			want: `{"lhs": "","rhs": "","error": "4","icc": "false"}`,
		},
		{
			name: "whitespace before colon",
			raw:  `{lhs : "x", rhs : "y", error : "", icc : "true"}`,
			want: `{"lhs": "x", "rhs": "y", "error": "", "icc": "true"}`,
		},
		{
			name: "already quoted keys untouched",
			raw:  `{"lhs": "x"}`,
			want: `{"lhs": "x"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, repairPayload(tc.raw))
		})
	}
}

func TestGoogleCalculatorProvider_QuoteURL(t *testing.T) {
	p := NewGoogleCalculatorProvider("https://example.com/calc", 5)
	assert.Equal(t, "https://example.com/calc?hl=en&q=1USD%3D%3FEUR", p.quoteURL("USD", "EUR"))
}

func TestGoogleCalculatorProvider_GetRate(t *testing.T) {
	t.Run("parses repaired payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "en", r.URL.Query().Get("hl"))
			assert.Equal(t, "1USD=?EUR", r.URL.Query().Get("q"))
			_, _ = w.Write([]byte(`{lhs: "1 USD = 0.84 Euros",rhs: "0.84 Euros",error: "",icc: "true"}`))
		}))
		defer srv.Close()

		p := NewGoogleCalculatorProvider(srv.URL, 5)
		rate, err := p.GetRate(context.Background(), "USD", "EUR")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.RequireFromString("0.84")), "got %s", rate)
	})

	t.Run("error field zero means success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{lhs: "1 USD = 110.5 Japanese yen",rhs: "110.5 Japanese yen",error: "0",icc: "true"}`))
		}))
		defer srv.Close()

		p := NewGoogleCalculatorProvider(srv.URL, 5)
		rate, err := p.GetRate(context.Background(), "USD", "JPY")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.RequireFromString("110.5")))
	})

	t.Run("upstream error code surfaces as unknown rate", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{lhs: "",rhs: "",error: "1",icc: "false"}`))
		}))
		defer srv.Close()

		p := NewGoogleCalculatorProvider(srv.URL, 5)
		_, err := p.GetRate(context.Background(), "USD", "EUR")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownRate)
		assert.Contains(t, err.Error(), `"1"`)
	})

	t.Run("unparsable body is malformed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>service moved</html>`))
		}))
		defer srv.Close()

		p := NewGoogleCalculatorProvider(srv.URL, 5)
		_, err := p.GetRate(context.Background(), "USD", "EUR")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("empty rhs is malformed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{lhs: "1 USD = ?",rhs: "",error: "",icc: "true"}`))
		}))
		defer srv.Close()

		p := NewGoogleCalculatorProvider(srv.URL, 5)
		_, err := p.GetRate(context.Background(), "USD", "EUR")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("rhs without leading decimal is malformed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{lhs: "1 USD = ?",rhs: "Euros 0.84",error: "",icc: "true"}`))
		}))
		defer srv.Close()

		p := NewGoogleCalculatorProvider(srv.URL, 5)
		_, err := p.GetRate(context.Background(), "USD", "EUR")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("non-success status is a fetch failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		p := NewGoogleCalculatorProvider(srv.URL, 5)
		_, err := p.GetRate(context.Background(), "USD", "EUR")
		assert.ErrorIs(t, err, ErrFetchFailed)
	})

	t.Run("connection error is a fetch failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // force connection refused

		p := NewGoogleCalculatorProvider(srv.URL, 5)
		_, err := p.GetRate(context.Background(), "USD", "EUR")
		assert.ErrorIs(t, err, ErrFetchFailed)
	})

	t.Run("default endpoint when base URL empty", func(t *testing.T) {
		p := NewGoogleCalculatorProvider("", 5)
		assert.Contains(t, p.quoteURL("USD", "EUR"), "https://www.google.com/ig/calculator?")
	})
}

func TestGoogleCalculatorProvider_ErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrUnknownRate, ErrMalformedResponse))
	assert.False(t, errors.Is(ErrFetchFailed, ErrUnknownRate))
}
