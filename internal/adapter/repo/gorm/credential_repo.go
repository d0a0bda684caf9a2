package gormrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"respawn/internal/adapter/repo/gorm/model"
	"respawn/internal/app/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type CredentialRepo struct {
	db *gorm.DB
}

func NewCredentialRepo(db *gorm.DB) CredentialRepo {
	return CredentialRepo{db: db}
}

func (r CredentialRepo) Create(ctx context.Context, credential ports.CredentialRecord) error {
	row := model.PlayerCredential{
		PlayerID:     credential.PlayerID,
		Email:        strings.ToLower(credential.Email),
		PasswordHash: credential.PasswordHash,
		Status:       credential.Status,
		CreatedAt:    credential.CreatedAt,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := getDBFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r CredentialRepo) GetByEmail(ctx context.Context, email string) (ports.CredentialRecord, error) {
	var row model.PlayerCredential
	err := getDBFromCtx(ctx, r.db).
		Where("lower(email) = ?", strings.ToLower(email)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CredentialRecord{}, ports.ErrNotFound
		}
		return ports.CredentialRecord{}, err
	}
	return ports.CredentialRecord{
		PlayerID:     row.PlayerID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
