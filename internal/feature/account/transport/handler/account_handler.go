// Package handler はaccountフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"jobportal_backend/internal/feature/account/domain/entity"
	"jobportal_backend/internal/feature/account/transport/http/dto"
	"jobportal_backend/internal/feature/account/usecase"
	jwtmw "jobportal_backend/internal/platform/jwt"
)

// fileField は写真または履歴書を運ぶマルチパートのフィールド名です。
const fileField = "file"

// AccountUsecase はアカウント操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AccountUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (entity.AccountView, error)
	Authenticate(ctx context.Context, email, password, role string) (entity.AccountView, string, error)
	UpdateProfile(ctx context.Context, accountID string, in usecase.UpdateProfileInput) (entity.AccountView, error)
	Profile(ctx context.Context, accountID string) (entity.AccountView, error)
}

// CookieConfig はセッションCookieの設定です。
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// AccountHandler はアカウント操作のHTTPリクエストを処理します。
// AccountUsecaseインターフェースに依存します。
type AccountHandler struct {
	accounts AccountUsecase
	cookie   CookieConfig
}

// NewAccountHandler はAccountHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewAccountHandler(accounts AccountUsecase, cookie CookieConfig) *AccountHandler {
	return &AccountHandler{accounts: accounts, cookie: cookie}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - マルチパートフォームをRegisterFormにバインド
// - 入力不足やメール重複時は400を返却
// - アップロードやDB失敗時は500を返却
// - 成功時は201を返却
func (h *AccountHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("register binding failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request"})
		return
	}

	// 写真がない場合はnilのままユースケースに渡す
	photo, closeFile, err := formFile(c)
	if err != nil {
		h.fail(c, "register", err)
		return
	}
	defer closeFile()

	_, err = h.accounts.Register(c.Request.Context(), usecase.RegisterInput{
		Fullname:    form.Fullname,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
		Password:    form.Password,
		Role:        form.Role,
		Photo:       photo,
	})
	if err != nil {
		h.fail(c, "register", err, "email", form.Email)
		return
	}

	slog.Info("account registered", "email", form.Email, "role", form.Role, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Account created successfully", Success: true})
}

// Login はログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - 認証失敗またはロール不一致時は400を返却
// - 成功時はHttpOnly・Secure・SameSite=StrictのCookieにトークンを設定し200を返却
// トークンはレスポンスボディには含めません。
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login binding failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request"})
		return
	}

	user, token, err := h.accounts.Authenticate(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		h.fail(c, "login", err, "email", req.Email)
		return
	}

	// トークンはCookieでのみ返す
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})

	slog.Info("account login successful", "account_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.UserResponse{
		Message: fmt.Sprintf("Welcome back %s", user.Fullname),
		User:    user,
		Success: true,
	})
}

// Logout はCookieを失効させてログアウトします。
// 発行済みのトークン自体は有効期限まで有効です。
func (h *AccountHandler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // Max-Age=0
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully", Success: true})
}

// UpdateProfile は認証済みアカウントのプロフィール更新を処理します。
// - 未認証の場合は401を返却
// - メール形式が不正な場合は400を返却
// - アカウントが存在しない場合は404を返却
// - 成功時は更新後のユーザー情報と200を返却
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	principal, ok := jwtmw.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "User not authenticated"})
		return
	}

	var form dto.UpdateProfileForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("profile update binding failed", "error", err, "account_id", principal.AccountID)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: bindingMessage(err)})
		return
	}

	resume, closeFile, err := formFile(c)
	if err != nil {
		h.fail(c, "update profile", err, "account_id", principal.AccountID)
		return
	}
	defer closeFile()

	user, err := h.accounts.UpdateProfile(c.Request.Context(), principal.AccountID, usecase.UpdateProfileInput{
		Fullname:    form.Fullname,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
		Bio:         form.Bio,
		Skills:      form.Skills,
		Resume:      resume,
	})
	if err != nil {
		h.fail(c, "update profile", err, "account_id", principal.AccountID)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{Message: "Profile updated successfully", User: user, Success: true})
}

// Profile は認証済みアカウントのプロフィールを返します。
func (h *AccountHandler) Profile(c *gin.Context) {
	principal, ok := jwtmw.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "User not authenticated"})
		return
	}

	user, err := h.accounts.Profile(c.Request.Context(), principal.AccountID)
	if err != nil {
		h.fail(c, "profile", err, "account_id", principal.AccountID)
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{User: user, Success: true})
}

// fail はエラーレスポンスを書き込みます。
// クライアントエラーは固定メッセージ、それ以外はエラー内容付きの500を返します。
func (h *AccountHandler) fail(c *gin.Context, op string, err error, attrs ...any) {
	attrs = append(attrs, "error", err, "remote_addr", c.ClientIP())

	if usecase.IsClientError(err) {
		status := http.StatusBadRequest
		if errors.Is(err, usecase.ErrAccountNotFound) {
			status = http.StatusNotFound
		}
		slog.Warn(op+" rejected", attrs...)
		c.JSON(status, dto.ErrorResponse{Message: clientMessage(err)})
		return
	}

	slog.Error(op+" failed", attrs...)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Message: "Internal Server Error",
		Error:   err.Error(),
	})
}

func clientMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrMissingFields):
		return "Something is missing"
	case errors.Is(err, usecase.ErrPhotoRequired):
		return "Profile photo is required"
	case errors.Is(err, usecase.ErrResumeRequired):
		return "Resume file is required"
	case errors.Is(err, usecase.ErrInvalidRole):
		return "Invalid role"
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		return "User already exists with this email"
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return "Incorrect email or password"
	case errors.Is(err, usecase.ErrRoleMismatch):
		return "Account doesn't exist with current role"
	case errors.Is(err, usecase.ErrStaleAccount):
		return "Profile was changed by another request, please retry"
	case errors.Is(err, usecase.ErrAccountNotFound):
		return "User not found"
	default:
		return "Bad request"
	}
}

// bindingMessage はメールアドレスの検証エラーのみ専用メッセージにします。
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Email" {
				return "Invalid email address"
			}
		}
	}
	return "Invalid request"
}

// formFile はアップロードされたファイルを開きます。
// ファイルがない場合はnilを返し、必須チェックはユースケースに任せます。
func formFile(c *gin.Context) (*usecase.File, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(fileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, fmt.Errorf("failed to read upload: %w", err)
	}
	return openFile(fh)
}

func openFile(fh *multipart.FileHeader) (*usecase.File, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to open upload: %w", err)
	}
	file := &usecase.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
	return file, func() { _ = f.Close() }, nil
}
