// internals/features/auth/repository/session_repository.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "akcert_backend/internals/features/auth/model"
)

/* ====================== ADMIN SESSION ====================== */

func CreateSession(ctx context.Context, db *gorm.DB, s *authModel.AdminSessionModel) error {
	return db.WithContext(ctx).Create(s).Error
}

func FindSessionByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*authModel.AdminSessionModel, error) {
	var s authModel.AdminSessionModel
	if err := db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func DeleteSession(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Delete(&authModel.AdminSessionModel{}, "id = ?", id).Error
}

// CleanupExpiredSessions removes grants older than cutoff.
func CleanupExpiredSessions(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("granted_at < ?", cutoff.UTC()).
		Delete(&authModel.AdminSessionModel{})
	return res.RowsAffected, res.Error
}
