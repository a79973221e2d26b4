// Package dto はaccountフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterForm は/user/registerのマルチパートフォームを表します。
// プロフィール写真は"file"フィールドで送られます。
// 未入力の検出はユースケースで行い、どの項目が欠けても同じメッセージを返します。
type RegisterForm struct {
	Fullname    string `form:"fullname" json:"fullname"`
	Email       string `form:"email" json:"email"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber"`
	Password    string `form:"password" json:"password"`
	Role        string `form:"role" json:"role"`
}

// LoginReq は/user/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateProfileForm は/user/profile/updateのマルチパートフォームを表します。
// すべて任意項目で、skillsはカンマ区切りです。履歴書は"file"フィールドで送られます。
type UpdateProfileForm struct {
	Fullname    string `form:"fullname" json:"fullname"`
	Email       string `form:"email" json:"email" binding:"omitempty,email"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber"`
	Bio         string `form:"bio" json:"bio"`
	Skills      string `form:"skills" json:"skills"`
}
