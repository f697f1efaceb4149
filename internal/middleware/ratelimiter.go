package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/haguru/localauth/internal/models/dto"
	"golang.org/x/time/rate"
)

const MsgTooManyRequests = "Too many requests. Please try again later."

// RateLimitMiddleware rejects requests with 429 once limiter runs dry.
// onLimited, if set, is called for every rejected request.
func RateLimitMiddleware(limiter *rate.Limiter, onLimited func(r *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if onLimited != nil {
					onLimited(r)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				resp := dto.RateLimitResponse{Message: MsgTooManyRequests}
				_ = json.NewEncoder(w).Encode(resp)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitHandlerFunc applies RateLimitMiddleware to a single handler function.
func RateLimitHandlerFunc(limiter *rate.Limiter, onLimited func(r *http.Request), h http.HandlerFunc) http.HandlerFunc {
	return RateLimitMiddleware(limiter, onLimited)(h).ServeHTTP
}
