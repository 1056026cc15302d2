package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/feature/auth/transport/http/dto"
	"shop_backend/internal/feature/auth/usecase"
	jwtmw "shop_backend/internal/platform/jwt"
)

// writeError はユースケースのエラーをHTTPステータスとクライアント向けメッセージに変換します。
// 内部の詳細はログにのみ出力します。
func writeError(c *gin.Context, op string, err error) {
	status, msg := http.StatusInternalServerError, "internal error"

	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, jwtmw.ErrUnauthenticated):
		status, msg = http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, usecase.ErrForbidden):
		status, msg = http.StatusForbidden, "forbidden"
	case errors.Is(err, usecase.ErrUserNotFound):
		status, msg = http.StatusNotFound, "user not found"
	case errors.Is(err, usecase.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		status, msg = http.StatusConflict, "email already exists"
	case errors.Is(err, usecase.ErrFullNameAlreadyExists):
		status, msg = http.StatusConflict, "full name already exists"
	}

	if status >= http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
	} else {
		slog.Warn(op+" rejected", "error", err, "status", status, "remote_addr", c.ClientIP())
	}
	c.JSON(status, dto.ErrorRes{Error: msg})
}

func badRequest(c *gin.Context, op string, err error) {
	slog.Warn(op+" validation failed", "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
}
