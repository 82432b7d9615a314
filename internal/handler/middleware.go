package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/notelog/backend/internal/model"
	"github.com/notelog/backend/internal/service"
)

const principalKey = "notelog_principal"

const (
	msgNoToken   = "no token provided"
	msgBadToken  = "invalid token"
	msgUserGone  = "user no longer exists"
	msgServerErr = "server error"
)

// Authenticator - AuthMiddleware가 의존하는 인증 서비스
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Principal, error)
}

// AuthMiddleware - Bearer 토큰을 검증하고 principal을 컨텍스트에 싣는다.
// 거절 사유는 응답 메시지로만 구분되며 내부 원인은 debug 로그에만 남긴다.
func AuthMiddleware(auth Authenticator, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortWithMessage(c, http.StatusUnauthorized, msgNoToken)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			abortWithMessage(c, http.StatusUnauthorized, msgNoToken)
			return
		}

		principal, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrUserGone):
			log.Debug("token subject missing", slog.String("path", c.FullPath()))
			abortWithMessage(c, http.StatusUnauthorized, msgUserGone)
			return
		case errors.Is(err, service.ErrUnauthorized):
			log.Debug("token rejected", slog.String("path", c.FullPath()), slog.Any("reason", err))
			abortWithMessage(c, http.StatusUnauthorized, msgBadToken)
			return
		default:
			log.Error("failed to authenticate", slog.String("op", "handler.AuthMiddleware"), slog.Any("error", err))
			abortWithMessage(c, http.StatusInternalServerError, msgServerErr)
			return
		}

		c.Set(principalKey, *principal)
		c.Next()
	}
}

// GetPrincipal - AuthMiddleware 뒤에서만 ok=true
func GetPrincipal(c *gin.Context) (model.Principal, bool) {
	if value, ok := c.Get(principalKey); ok {
		if p, ok := value.(model.Principal); ok {
			return p, true
		}
	}
	return model.Principal{}, false
}

func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestLogger - 요청당 한 줄 access 로그
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}
		if status >= http.StatusInternalServerError {
			log.Error("request", attrs...)
			return
		}
		log.Info("request", attrs...)
	}
}

func abortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, model.ErrorResponse{Message: message})
}
