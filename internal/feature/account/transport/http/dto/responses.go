package dto

import "jobportal_backend/internal/feature/account/domain/entity"

// MessageResponse はペイロードを持たない操作のレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// UserResponse はパスワードを除いたアカウント情報を返します。
type UserResponse struct {
	Message string             `json:"message,omitempty"`
	User    entity.AccountView `json:"user"`
	Success bool               `json:"success"`
}

// ErrorResponse は失敗時のレスポンスです。
// Errorには想定外の失敗の場合のみ元のエラー内容が入ります。
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}
