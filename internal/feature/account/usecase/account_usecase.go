// Package usecase はaccountフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"jobportal_backend/internal/feature/account/domain/entity"
)

const (
	// photoFolder と resumeFolder はメディアストア上のアップロード先プレフィックスです。
	photoFolder  = "profile-photos"
	resumeFolder = "resumes"

	// dummyHash はメールアドレスが未登録の場合に比較するダミーハッシュです。
	// 存在しないアカウントでもパスワード不一致と同じbcryptコストがかかります。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// AccountRepository はアカウントエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type AccountRepository interface {
	// Create は新しいアカウントをストレージに永続化します。
	// 同じメールアドレスが既に使われている場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail はメールアドレスに一致するアカウントを取得します。
	// 存在しない場合、ErrAccountNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByID はIDに一致するアカウントを取得します。
	// 存在しない場合、ErrAccountNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Account, error)

	// Update は既存アカウントの全フィールドを保存し、Versionを進めます。
	// 新しいメールアドレスが使用済みの場合はErrEmailAlreadyExists、
	// 保存済みのVersionと一致しない場合はErrStaleAccountを返します。
	Update(ctx context.Context, account *entity.Account) error
}

// PasswordHasher はパスワードの一方向変換を定義します。
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare はパスワードがハッシュと一致する場合のみnilを返します。
	Compare(hash, password string) error
}

// TokenIssuer はセッショントークンの署名を定義します。
// インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	GenerateToken(accountID string) (string, error)
}

// File はクライアントから受け取ったアップロードファイルです。
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaStore はファイルを外部ストレージに保存し、永続的なURLを返します。
type MediaStore interface {
	Upload(ctx context.Context, folder string, file File) (string, error)
}

// RegisterInput は登録フォームの内容です。
type RegisterInput struct {
	Fullname    string
	Email       string
	PhoneNumber string
	Password    string
	Role        string
	Photo       *File
}

// UpdateProfileInput はプロフィールの部分更新内容です。
// 空文字のフィールドは変更しません。Resumeは必須です。
type UpdateProfileInput struct {
	Fullname    string
	Email       string
	PhoneNumber string
	Bio         string
	Skills      string
	Resume      *File
}

// accountUsecase はアカウントのビジネスロジックを実装します。
type accountUsecase struct {
	accounts AccountRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	media    MediaStore
	newID    func() string
}

// NewAccountUsecase はaccountUsecaseの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewAccountUsecase(accounts AccountRepository, hasher PasswordHasher, tokens TokenIssuer, media MediaStore) *accountUsecase {
	return &accountUsecase{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		media:    media,
		newID:    uuid.NewString,
	}
}

// Register はハッシュ化されたパスワードとプロフィール写真で新規アカウントを登録します。
func (u *accountUsecase) Register(ctx context.Context, in RegisterInput) (entity.AccountView, error) {
	// 必須項目を検証
	if blank(in.Fullname, in.Email, in.PhoneNumber, in.Password, in.Role) {
		return entity.AccountView{}, ErrMissingFields
	}
	if in.Photo == nil {
		return entity.AccountView{}, ErrPhotoRequired
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return entity.AccountView{}, ErrInvalidRole
	}
	email := normalizeEmail(in.Email)

	// アップロード前に重複を確認し、不要なファイルを残さない
	// 同時登録はユニークインデックスで防ぐ
	if err := u.ensureEmailFree(ctx, email); err != nil {
		return entity.AccountView{}, err
	}

	// プロフィール写真をアップロード
	photoURL, err := u.media.Upload(ctx, photoFolder, *in.Photo)
	if err != nil {
		return entity.AccountView{}, &UpstreamError{Op: "upload profile photo", Err: err}
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return entity.AccountView{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &entity.Account{
		ID:          u.newID(),
		Fullname:    strings.TrimSpace(in.Fullname),
		Email:       email,
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Password:    hashed,
		Role:        role,
		Profile: entity.Profile{
			ProfilePhoto: photoURL,
			Skills:       []string{},
		},
	}
	if err := u.accounts.Create(ctx, account); err != nil {
		return entity.AccountView{}, err
	}
	return account.Sanitize(), nil
}

// Authenticate は認証情報とロールを検証し、成功時にトークンを発行します。
// タイミング攻撃を防止するため、アカウントが存在しない場合でもbcrypt比較を実行します。
func (u *accountUsecase) Authenticate(ctx context.Context, email, password, role string) (entity.AccountView, string, error) {
	if blank(email, password, role) {
		return entity.AccountView{}, "", ErrMissingFields
	}

	// メールアドレスでアカウントを検索
	account, err := u.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		return entity.AccountView{}, "", fmt.Errorf("failed to find account: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = account.Password
	}
	// 常にパスワードを検証
	compareErr := u.hasher.Compare(passwordHash, password)

	// アカウント未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return entity.AccountView{}, "", ErrInvalidCredentials
	}

	// ロール不一致は認証失敗とは別のエラーで返す
	// そのためメールアドレスとパスワードの組が正しいことは判別できる
	if string(account.Role) != strings.TrimSpace(role) {
		return entity.AccountView{}, "", ErrRoleMismatch
	}

	// 注入されたジェネレーターでトークンを生成
	token, err := u.tokens.GenerateToken(account.ID)
	if err != nil {
		return entity.AccountView{}, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return account.Sanitize(), token, nil
}

// UpdateProfile はアカウントを部分更新し、履歴書を差し替えます。
func (u *accountUsecase) UpdateProfile(ctx context.Context, accountID string, in UpdateProfileInput) (entity.AccountView, error) {
	if in.Resume == nil {
		return entity.AccountView{}, ErrResumeRequired
	}

	// アップロード前にアカウントの存在を確認
	account, err := u.accounts.FindByID(ctx, accountID)
	if err != nil {
		return entity.AccountView{}, err
	}

	// 指定されたフィールドのみ更新
	if email := normalizeEmail(in.Email); email != "" && email != account.Email {
		if err := u.ensureEmailFree(ctx, email); err != nil {
			return entity.AccountView{}, err
		}
		account.Email = email
	}
	if v := strings.TrimSpace(in.Fullname); v != "" {
		account.Fullname = v
	}
	if v := strings.TrimSpace(in.PhoneNumber); v != "" {
		account.PhoneNumber = v
	}
	if in.Bio != "" {
		account.Profile.Bio = in.Bio
	}
	if in.Skills != "" {
		account.Profile.Skills = entity.ParseSkills(in.Skills)
	}

	// 履歴書のURLと元のファイル名は常に上書き
	resumeURL, err := u.media.Upload(ctx, resumeFolder, *in.Resume)
	if err != nil {
		return entity.AccountView{}, &UpstreamError{Op: "upload resume", Err: err}
	}
	account.Profile.Resume = resumeURL
	account.Profile.ResumeOriginalName = in.Resume.Filename

	if err := u.accounts.Update(ctx, account); err != nil {
		return entity.AccountView{}, err
	}
	return account.Sanitize(), nil
}

// Profile はアカウントのパスワードを除いたビューを返します。
func (u *accountUsecase) Profile(ctx context.Context, accountID string) (entity.AccountView, error) {
	account, err := u.accounts.FindByID(ctx, accountID)
	if err != nil {
		return entity.AccountView{}, err
	}
	return account.Sanitize(), nil
}

// ensureEmailFree はメールアドレスが未使用であることを確認します。
func (u *accountUsecase) ensureEmailFree(ctx context.Context, email string) error {
	_, err := u.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailAlreadyExists
	case errors.Is(err, ErrAccountNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check email: %w", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// blank はトリム後に空の値が1つでもあるかを判定します。
func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
