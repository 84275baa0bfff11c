package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/libkeeper/internal/common"
	"github.com/dmitrijs2005/libkeeper/internal/logging"
	"github.com/dmitrijs2005/libkeeper/internal/server/auth"
	"github.com/dmitrijs2005/libkeeper/internal/server/config"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const identityKey = "identity"

func (s *Server) middleware(cfg *config.Config) []echo.MiddlewareFunc {
	mw := []echo.MiddlewareFunc{
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: uuid.NewString,
			RequestIDHandler: func(c echo.Context, id string) {
				c.SetRequest(c.Request().WithContext(logging.ContextWithRequestID(c.Request().Context(), id)))
			},
		}),
		middleware.RecoverWithConfig(middleware.RecoverConfig{
			LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
				s.logger.Error(c.Request().Context(), "panic recovered", "error", err, "stack", string(stack))
				return err
			},
		}),
		s.requestLogger(),
		middleware.CORS(),
	}
	if cfg.RateLimit > 0 {
		mw = append(mw, rateLimiter(cfg.RateLimit, cfg.RateBurst))
	}
	return mw
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"latency", v.Latency.String(),
			}
			ctx := c.Request().Context()
			if v.Error != nil {
				s.logger.Warn(ctx, "request", append(args, "error", v.Error)...)
				return nil
			}
			s.logger.Info(ctx, "request", args...)
			return nil
		},
	})
}

// rateLimiter throttles per client IP with a token bucket.
func rateLimiter(limit float64, burst int) echo.MiddlewareFunc {
	deny := func(c echo.Context, _ string, _ error) error {
		return c.JSON(http.StatusTooManyRequests, message("rate limit exceeded"))
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(limit),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: deny,
	})
}

// requireToken validates the bearer token and stores the caller's
// models.Identity in the echo context.
func (s *Server) requireToken() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: identityKey,
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			return auth.ParseToken(token, s.jwtSecret)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			msg := "Missing or invalid token"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "Token has expired"
			}
			return c.JSON(http.StatusUnauthorized, message(msg))
		},
	})
}

func caller(c echo.Context) models.Identity {
	id, _ := c.Get(identityKey).(models.Identity)
	return id
}
