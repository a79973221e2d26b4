// Package adapters はaccountフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"jobportal_backend/internal/feature/account/domain/entity"
	"jobportal_backend/internal/feature/account/usecase"
)

// pgUniqueViolation はPostgreSQLのユニーク制約違反（SQLSTATE）です。
const pgUniqueViolation = "23505"

// accountGorm はAccountRepositoryインターフェースのGORM実装です。
type accountGorm struct {
	db *gorm.DB
}

// accountGormがAccountRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.AccountRepository = (*accountGorm)(nil)

// NewAccountRepository は指定されたgorm.DB接続でaccountGormの新しいインスタンスを生成します。
func NewAccountRepository(db *gorm.DB) *accountGorm {
	return &accountGorm{db: db}
}

// Create はアカウントをデータベースに追加します。
// 同じメールアドレスが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *accountGorm) Create(ctx context.Context, a *entity.Account) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでアカウントを取得します。
// 存在しない場合、usecase.ErrAccountNotFoundを返します。
func (r *accountGorm) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByID はIDでアカウントを取得します。
// 存在しない場合、usecase.ErrAccountNotFoundを返します。
func (r *accountGorm) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Update は既存アカウントの全カラムをゼロ値も含めて書き込みます。
// 保存済みのversionがa.Versionと一致する場合のみ更新されます。
func (r *accountGorm) Update(ctx context.Context, a *entity.Account) error {
	expected := a.Version
	a.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(&entity.Account{ID: a.ID}).
		Where("version = ?", expected).
		Select("*").
		Omit("id", "created_at").
		Updates(a)
	if result.Error != nil {
		a.Version = expected
		if isDuplicateKey(result.Error) {
			return usecase.ErrEmailAlreadyExists
		}
		return result.Error
	}
	// 0件更新: アカウントが存在しないか、versionが古い
	if result.RowsAffected == 0 {
		a.Version = expected
		var n int64
		if err := r.db.WithContext(ctx).Model(&entity.Account{}).Where("id = ?", a.ID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return usecase.ErrAccountNotFound
		}
		return usecase.ErrStaleAccount
	}
	return nil
}

// isDuplicateKey はユニークインデックス違反を判定します。
// GORMのエラー変換が有効な場合と、pgxのエラーがそのまま届く場合の両方に対応します。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
