package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adpilot/admanager/internal/config"
	"github.com/adpilot/admanager/internal/config/configs"
	"github.com/adpilot/admanager/internal/domain/user"
	"github.com/adpilot/admanager/internal/http/middlewares"
	"github.com/adpilot/admanager/internal/security"
)

type UserStore interface {
	Create(ctx context.Context, u user.User) error
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	Update(ctx context.Context, u user.User) (user.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID, email string) (string, error)
}

type AuthHandler struct {
	users  UserStore
	jwt    TokenIssuer
	upload configs.Upload
}

func NewAuthHandler(users UserStore, jwt TokenIssuer, upload configs.Upload) *AuthHandler {
	return &AuthHandler{
		users:  users,
		jwt:    jwt,
		upload: upload,
	}
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req user.SignUpRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	now := time.Now().UTC()
	u := user.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Language:     "en",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.users.Create(cctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondBadRequest(ctx, "Email is already in use.", gin.H{"email": "email_taken"})
			return
		}
		RespondInternal(ctx, "Could not create user")
		return
	}

	token, err := h.jwt.GenerateToken(u.ID, u.Email)
	if err != nil {
		RespondInternal(ctx, "Could not generate token")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"user":  u,
		"token": token,
	})
}

func (h *AuthHandler) SignIn(ctx *gin.Context) {
	var req user.SignInRequest
	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	found, err := h.users.GetByEmail(cctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
			return
		}
		RespondInternal(ctx, "Could not sign in")
		return
	}

	if err := security.CheckPassword(found.PasswordHash, req.Password); err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	token, err := h.jwt.GenerateToken(found.ID, found.Email)
	if err != nil {
		RespondInternal(ctx, "Could not generate token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":  found,
		"token": token,
	})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not fetch user")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": u})
}

// UpdateProfile merges the provided fields onto the stored profile. The
// body is JSON, or a multipart form when an avatar file rides along.
func (h *AuthHandler) UpdateProfile(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	var req user.UpdateProfileRequest
	var avatar *multipart.FileHeader

	if strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		if err := ctx.ShouldBind(&req); err != nil {
			RespondBadRequest(ctx, "Invalid form data", gin.H{"reason": err.Error()})
			return
		}
		if f, err := ctx.FormFile("avatar"); err == nil {
			avatar = f
		}
	} else if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not update profile")
		return
	}

	req.ApplyTo(&u)

	if avatar != nil {
		path, err := h.saveAvatar(ctx, avatar)
		if err != nil {
			RespondBadRequest(ctx, "Could not store avatar", gin.H{"reason": err.Error()})
			return
		}
		u.Avatar = path
	}

	updated, err := h.users.Update(cctx, u)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, "User not found")
		case errors.Is(err, user.ErrEmailTaken):
			RespondBadRequest(ctx, "Email is already in use.", gin.H{"email": "email_taken"})
		default:
			RespondInternal(ctx, "Could not update profile")
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": updated})
}

func (h *AuthHandler) saveAvatar(ctx *gin.Context, file *multipart.FileHeader) (string, error) {
	if h.upload.MaxAvatarBytes > 0 && file.Size > h.upload.MaxAvatarBytes {
		return "", errors.New("avatar file too large")
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(h.upload.Dir, name)
	if err := ctx.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return h.upload.URLPrefix + "/" + name, nil
}
