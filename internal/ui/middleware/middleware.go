package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jub0bs/cors"
	"golang.org/x/time/rate"

	"github.com/petly-community/petly/internal/apperrors"
	"github.com/petly-community/petly/internal/logger"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/responses"
	"github.com/petly-community/petly/internal/ui/session"
	"github.com/petly-community/petly/internal/ui/types"
)

// CORS returns a CORS middleware using the provided pre-built middleware instance.
func CORS(middleware *cors.Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return middleware.Wrap(next)
	}
}

// RequestedWithHeader must be set on every state-changing ui-api request.
// Browsers only let another origin send it after a CORS preflight
const RequestedWithHeader = "X-Requested-With"

// CrossOriginProtection rejects state-changing requests that a page on another origin could have sent with the user's session.
//
// Requests other than GET, HEAD and OPTIONS must carry the X-Requested-With header and, when the browser
// reports where they come from (Sec-Fetch-Site or Origin), come from the server's own origin or one of trustedOrigins.
// Requests without browser metadata (curl, scripts) only need the header.
func CrossOriginProtection(trustedOrigins []string, messages *i18n.Messages) (func(http.Handler) http.Handler, error) {
	protection := http.NewCrossOriginProtection()
	for _, origin := range trustedOrigins {
		if err := protection.AddTrustedOrigin(origin); err != nil {
			return nil, fmt.Errorf("invalid trusted origin %q: %w", origin, err)
		}
	}

	deny := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.ContextRequestLogger(r.Context()).Warn("cross-origin request rejected",
			slog.String("method", r.Method),
			slog.String("origin", r.Header.Get("Origin")),
			slog.String("sec_fetch_site", r.Header.Get("Sec-Fetch-Site")),
		)
		responses.RespondWithError(w, r, http.StatusForbidden, apperrors.ErrCodeCrossOriginRequest, messages.Get(i18n.MsgCrossOriginRejected))
	})
	protection.SetDenyHandler(deny)

	return func(next http.Handler) http.Handler {
		return protection.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
			default:
				if r.Header.Get(RequestedWithHeader) == "" {
					deny.ServeHTTP(w, r)
					return
				}
			}
			next.ServeHTTP(w, r)
		}))
	}, nil
}

func SecurityHeaders(environment string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none';")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Cache-Control", "no-store")

			if environment == "prod" || environment == "staging" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimit limits the size of request bodies and adds the limit as a header for client awareness
func RequestSizeLimit(maxBytes int64, messages *i18n.Messages) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Petly-Max-Request-Size", strconv.FormatInt(maxBytes, 10))

			if r.ContentLength > maxBytes {
				reqLogger := logger.ContextRequestLogger(r.Context())
				reqLogger.Warn("Request size limit exceeded",
					slog.String("component", "RequestSizeLimit"),
					slog.Int64("content_length", r.ContentLength),
					slog.Int64("max_bytes", maxBytes),
				)

				logger.ContextWithLogAttrs(r.Context(),
					slog.Int64("content_length", r.ContentLength),
					slog.Int64("max_bytes", maxBytes),
				)

				responses.RespondWithError(w, r, http.StatusRequestEntityTooLarge,
					apperrors.ErrCodeRequestTooLarge, messages.Get(i18n.MsgRequestTooLarge))
				return
			}

			// bodies without a Content-Length are cut off when the form is parsed
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit limits requests per second. If requestsPerSecond <= 0, rate limiting is disabled.
func RateLimit(requestsPerSecond int32, burst int32, messages *i18n.Messages) func(http.Handler) http.Handler {
	if requestsPerSecond <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), int(burst))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				reqLogger := logger.ContextRequestLogger(r.Context())
				reqLogger.Warn("Rate limit exceeded",
					slog.String("component", "RateLimit"),
					slog.String("remote_addr", r.RemoteAddr),
				)

				logger.ContextWithLogAttrs(r.Context(),
					slog.String("remote_addr", r.RemoteAddr),
				)

				responses.RespondWithError(w, r, http.StatusTooManyRequests,
					apperrors.ErrCodeRateLimitExceeded, messages.Get(i18n.MsgRateLimited))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests when the process has no usable session.
//
// A token that has expired locally is discarded (the session is logged out) before answering 401.
// Opaque tokens are passed through: only the API can tell whether they are still valid.
func RequireAuth(store *session.Store, messages *i18n.Messages) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := logger.ContextRequestLogger(r.Context())
			tokenStatus := store.TokenStatus()

			switch {
			case tokenStatus == session.TokenExpired:
				reqLogger.Info("Session token expired - logging out",
					slog.String("component", "ui.RequireAuth"),
				)
				if err := store.Logout(r.Context()); err != nil {
					reqLogger.Error("Failed to clear the expired session",
						slog.String("component", "ui.RequireAuth"),
						slog.String("error", err.Error()),
					)
				}
			case tokenStatus != session.TokenMissing && store.Authenticated():
				reqLogger.Debug("Authentication check successful",
					slog.String("component", "ui.RequireAuth"),
					slog.String("status", tokenStatus.String()),
				)
				if user := store.User(); user != nil {
					logger.ContextWithLogAttrs(r.Context(), slog.Int64("user_id", user.ID))
				}
				next.ServeHTTP(w, r)
				return
			default:
				reqLogger.Debug("Authentication failed - no session",
					slog.String("component", "ui.RequireAuth"),
					slog.String("status", tokenStatus.String()),
				)
			}

			responses.RespondWithError(w, r, http.StatusUnauthorized,
				apperrors.ErrCodeAuthenticationFailure, messages.Get(i18n.MsgLoginRequired))
		})
	}
}

// RequireRole rejects requests from users without one of the given roles. Use after RequireAuth
func RequireRole(store *session.Store, messages *i18n.Messages, roles ...types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.HasRole(roles...) {
				reqLogger := logger.ContextRequestLogger(r.Context())

				var role types.Role
				if user := store.User(); user != nil {
					role = user.Role
				}
				reqLogger.Debug("Access denied - role not allowed",
					slog.String("component", "ui.RequireRole"),
					slog.String("role", string(role)),
				)

				responses.RespondWithError(w, r, http.StatusForbidden,
					apperrors.ErrCodeAuthorizationFailure, messages.Get(i18n.MsgAccessDenied))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
