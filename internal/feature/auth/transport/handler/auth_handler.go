// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/feature/auth/domain/entity"
	"shop_backend/internal/feature/auth/transport/http/dto"
	"shop_backend/internal/feature/auth/usecase"
	jwtmw "shop_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は新しいCustomerアカウントを登録します。
	Signup(ctx context.Context, in usecase.SignupInput) (*entity.User, error)
	// Login はフルネームとパスワードで認証し、JWTを返します。
	Login(ctx context.Context, fullName, password string) (string, error)
	// Logout は提示されたトークンを失効させます。
	Logout(ctx context.Context, userID uint, tokenID string, expiresAt time.Time) error
}

// AuthHandler は認証関連のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup はPOST /api/auth/registerを処理します。
// - バリデーションエラー時は400を返します
// - メールアドレスまたはフルネームが登録済みの場合は409を返します
// - 成功時は作成したユーザーと201を返します
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "signup", err)
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Image:    req.Image,
	})
	if err != nil {
		writeError(c, "signup", err)
		return
	}

	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.UserResFromEntity(user))
}

// Login はPOST /api/auth/loginを処理します。
// - バリデーションエラー時は400を返します
// - 認証失敗時は汎用メッセージと401を返します
// - 成功時はJWTと200を返します
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "login", err)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.FullName, req.Password)
	if err != nil {
		writeError(c, "login", err)
		return
	}

	slog.Info("user login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenRes{Token: token})
}

// Logout はPOST /api/auth/logoutを処理します。AuthRequiredの後段で実行する必要があります。
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, userID, ok := authenticated(c)
	if !ok {
		writeError(c, "logout", jwtmw.ErrUnauthenticated)
		return
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := h.auth.Logout(c.Request.Context(), userID, claims.ID, expiresAt); err != nil {
		writeError(c, "logout", err)
		return
	}

	slog.Info("user logout successful", "user_id", userID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageRes{Message: "ok"})
}

// Me はGET /api/auth/meを処理し、トークンに含まれるプロフィールを返します。
func (h *AuthHandler) Me(c *gin.Context) {
	claims, userID, ok := authenticated(c)
	if !ok {
		writeError(c, "me", jwtmw.ErrUnauthenticated)
		return
	}

	res := dto.ProfileRes{
		ID:       userID,
		FullName: claims.Name,
		Email:    claims.Email,
		Phone:    claims.Phone,
		Address:  claims.Address,
		Image:    claims.Image,
		Role:     claims.Role,
		Status:   claims.Status,
	}
	if claims.ExpiresAt != nil {
		res.ExpiresAt = claims.ExpiresAt.Time
	}
	c.JSON(http.StatusOK, res)
}

// authenticated はAuthRequiredが保存したクレームとユーザーIDを返します。
func authenticated(c *gin.Context) (*jwtmw.Claims, uint, bool) {
	claims, ok := jwtmw.ClaimsFromContext(c)
	if !ok {
		return nil, 0, false
	}
	id, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		return nil, 0, false
	}
	return claims, id, true
}

// actorFrom は検証済みクレームからユースケースのActorを生成します。
func actorFrom(c *gin.Context) (usecase.Actor, bool) {
	claims, id, ok := authenticated(c)
	if !ok {
		return usecase.Actor{}, false
	}
	return usecase.Actor{ID: id, FullName: claims.Name, Role: claims.Role}, true
}
