package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notelog/backend/internal/service"
)

// writeError - 서비스 에러를 {message} 응답으로 변환한다.
// 분류되지 않은 에러는 500으로 내보내고 op와 함께 로그를 남긴다.
func writeError(c *gin.Context, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		abortWithMessage(c, http.StatusBadRequest, "invalid input")
	case errors.Is(err, service.ErrUserGone):
		abortWithMessage(c, http.StatusUnauthorized, msgUserGone)
	case errors.Is(err, service.ErrUnauthorized):
		abortWithMessage(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrConflict):
		abortWithMessage(c, http.StatusConflict, "user already exists")
	case errors.Is(err, service.ErrNotFound):
		abortWithMessage(c, http.StatusNotFound, "not found")
	default:
		log.Error("request failed", slog.String("op", op), slog.Any("error", err))
		abortWithMessage(c, http.StatusInternalServerError, msgServerErr)
	}
}

// NoRoute - 등록되지 않은 경로도 {message} 형식으로 응답한다
func NoRoute(c *gin.Context) {
	abortWithMessage(c, http.StatusNotFound, "not found")
}

// NoMethod - 경로는 있지만 메서드가 없는 경우
func NoMethod(c *gin.Context) {
	abortWithMessage(c, http.StatusMethodNotAllowed, "method not allowed")
}
