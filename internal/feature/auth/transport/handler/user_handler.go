package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/feature/auth/domain/entity"
	"shop_backend/internal/feature/auth/transport/http/dto"
	"shop_backend/internal/feature/auth/usecase"
	jwtmw "shop_backend/internal/platform/jwt"
)

// UserUsecase はユーザー管理のユースケースを定義します。
type UserUsecase interface {
	ListUsers(ctx context.Context, actor usecase.Actor) ([]*entity.User, error)
	GetUser(ctx context.Context, actor usecase.Actor, id uint) (*entity.User, error)
	CreateUser(ctx context.Context, actor usecase.Actor, in usecase.CreateUserInput) (*entity.User, error)
	UpdateUser(ctx context.Context, actor usecase.Actor, id uint, in usecase.UpdateUserInput) (string, error)
	DeleteUser(ctx context.Context, actor usecase.Actor, id uint) error
}

// UserHandler は/api/usersエンドポイントを処理します。全ルートはAuthRequiredの後段で実行されます。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// List はGET /api/usersを処理します。
func (h *UserHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		writeError(c, "list users", jwtmw.ErrUnauthenticated)
		return
	}

	users, err := h.users.ListUsers(c.Request.Context(), actor)
	if err != nil {
		writeError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResFromEntities(users))
}

// Get はGET /api/users/:idを処理します。
func (h *UserHandler) Get(c *gin.Context) {
	actor, id, ok := h.actorAndID(c, "get user")
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, "get user", err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResFromEntity(user))
}

// Create はPOST /api/usersを処理します。
func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		writeError(c, "create user", jwtmw.ErrUnauthenticated)
		return
	}

	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "create user", err)
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), actor, usecase.CreateUserInput{
		SignupInput: usecase.SignupInput{
			FullName: req.FullName,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
			Address:  req.Address,
			Image:    req.Image,
		},
		Role:   req.Role,
		Status: req.Status,
	})
	if err != nil {
		writeError(c, "create user", err)
		return
	}

	slog.Info("user created", "user_id", user.ID, "by", actor.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.UserResFromEntity(user))
}

// Update はPUT /api/users/:idを処理し、再発行したトークンを返します。
func (h *UserHandler) Update(c *gin.Context) {
	actor, id, ok := h.actorAndID(c, "update user")
	if !ok {
		return
	}

	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "update user", err)
		return
	}

	token, err := h.users.UpdateUser(c.Request.Context(), actor, id, usecase.UpdateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     req.Role,
		Status:   req.Status,
		Password: req.Password,
		Image:    req.Image,
	})
	if err != nil {
		writeError(c, "update user", err)
		return
	}

	slog.Info("user updated", "user_id", id, "by", actor.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenRes{Token: token})
}

// Delete はDELETE /api/users/:idを処理します。
func (h *UserHandler) Delete(c *gin.Context) {
	actor, id, ok := h.actorAndID(c, "delete user")
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), actor, id); err != nil {
		writeError(c, "delete user", err)
		return
	}

	slog.Info("user deleted", "user_id", id, "by", actor.ID, "remote_addr", c.ClientIP())
	c.Status(http.StatusNoContent)
}

// actorAndID は呼び出し元と:idパスパラメータを解決します。失敗時はエラーレスポンスを書き込みます。
func (h *UserHandler) actorAndID(c *gin.Context, op string) (usecase.Actor, uint, bool) {
	actor, ok := actorFrom(c)
	if !ok {
		writeError(c, op, jwtmw.ErrUnauthenticated)
		return usecase.Actor{}, 0, false
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		slog.Warn(op+" invalid id", "id", c.Param("id"), "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid user id"})
		return usecase.Actor{}, 0, false
	}
	return actor, uint(id), true
}
