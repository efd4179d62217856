package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"ratesource/internal/currency"
	"ratesource/internal/provider"
	"ratesource/internal/rates"
)

// RateResponse represents a conversion rate for a directional currency pair.
type RateResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	Rate string `json:"rate"`
}

// FlushResponse represents the outcome of flushing a single cached pair.
type FlushResponse struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Flushed bool   `json:"flushed"`
	Rate    string `json:"rate,omitempty"`
}

// HandleGetRate returns the rate for ?from=XXX&to=YYY, fetching from the
// quote endpoint on first request and serving from the cache thereafter.
func HandleGetRate(src rates.RateSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := r.URL.Query().Get("from")
		to := r.URL.Query().Get("to")
		if from == "" || to == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "from and to query params are required"})
			return
		}

		rate, err := src.GetRate(r.Context(), from, to)
		if err != nil {
			switch {
			case errors.Is(err, currency.ErrUnknown):
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			case errors.Is(err, provider.ErrUnknownRate):
				writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "No rate available for " + strings.ToUpper(from) + "/" + strings.ToUpper(to)})
			case errors.Is(err, provider.ErrFetchFailed), errors.Is(err, provider.ErrMalformedResponse):
				writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "Quote endpoint unavailable"})
			default:
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
			}
			return
		}

		writeJSON(w, http.StatusOK, RateResponse{
			From: strings.ToUpper(from),
			To:   strings.ToUpper(to),
			Rate: rate.String(),
		})
	}
}

// HandleFlushRate evicts the cached rate for /rates/{from}/{to}. Absence of
// a cached entry is reported, not treated as an error.
func HandleFlushRate(src rates.RateSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := chi.URLParam(r, "from")
		to := chi.URLParam(r, "to")

		rate, flushed, err := src.FlushRate(from, to)
		if err != nil {
			switch {
			case errors.Is(err, currency.ErrUnknown):
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			default:
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
			}
			return
		}

		resp := FlushResponse{
			From:    strings.ToUpper(from),
			To:      strings.ToUpper(to),
			Flushed: flushed,
		}
		if flushed {
			resp.Rate = rate.String()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleFlushRates evicts every cached rate.
func HandleFlushRates(src rates.RateSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		src.FlushRates()
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleHealthz always returns 200 OK while the service is running.
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("OK"))
	}
}

// HandleReadyz checks connectivity to the optional Redis provider cache.
// With no Redis configured the service has no external dependencies to probe.
func HandleReadyz(cache *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cache != nil {
			if err := cache.Ping(r.Context()).Err(); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "Cache not ready"})
				return
			}
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
