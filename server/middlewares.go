package server

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Daskott/raksha/colors"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

type ResponseWriterWithStatus struct {
	http.ResponseWriter
	Status int
}

func (r *ResponseWriterWithStatus) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		responseWriter := &ResponseWriterWithStatus{
			ResponseWriter: w,
			Status:         200,
		}

		defer func() {
			logg.Info(
				colors.Magenta(r.Method), " ",
				r.RequestURI, " ",
				colors.Status(responseWriter.Status), " ",
				colors.Yellow(fmt.Sprintf("[%v]", time.Since(start))))
		}()

		next.ServeHTTP(responseWriter, r)
	})
}

// recoveryMiddleware turns a panic in a handler into a 500. The stack is logged, never returned.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logg.Errorw("panic recovered",
					"panic", rec,
					"method", r.Method,
					"url", r.URL.String(),
					"stack", string(debug.Stack()),
				)

				writeResponse(w,
					ErrorPayload{Detail: "Internal server error", Message: fmt.Sprint(rec)},
					http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) initialContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")

		// 	Add decoded token & user to request context
		ctx := r.Context()
		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			ctx = context.WithValue(ctx, DECODED_JWT_CONTEXT_KEY, s.decodeAndVerifyAuthHeader(authHeader))
		} else {
			ctx = context.WithValue(ctx, DECODED_JWT_CONTEXT_KEY, DecodedJWT{ErrorMsg: "Not authenticated"})
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func protectedRouteMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decodedJWT, _ := r.Context().Value(DECODED_JWT_CONTEXT_KEY).(DecodedJWT)
		if decodedJWT.ErrorMsg != "" || decodedJWT.User == nil {
			errMsg := decodedJWT.ErrorMsg
			if errMsg == "" {
				errMsg = "Not authenticated"
			}

			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, errMsg)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func protected(handler http.HandlerFunc) http.Handler {
	return protectedRouteMiddleware(handler)
}

// rateLimitMiddleware limits requests per client IP, shared by every route it wraps
func (s *Server) rateLimitMiddleware() func(http.Handler) http.Handler {
	rateLimiter := limiter.New(memory.NewStore(), s.authRate)

	middleware := stdlib.NewMiddleware(rateLimiter,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			s.metrics.RateLimited(r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			writeInternalError(w, err)
		}),
	)

	return middleware.Handler
}
