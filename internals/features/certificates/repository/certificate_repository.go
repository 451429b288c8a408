package repository

import (
	"context"

	"akcert_backend/internals/features/certificates/model"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

func (r *CertificateRepository) Create(ctx context.Context, cert *model.CertificateModel) error {
	return r.DB.WithContext(ctx).Create(cert).Error
}

// FindAll returns every certificate, newest first.
func (r *CertificateRepository) FindAll(ctx context.Context) ([]model.CertificateModel, error) {
	var rows []model.CertificateModel
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *CertificateRepository) FindByCertificateID(ctx context.Context, certificateID string) (*model.CertificateModel, error) {
	var cert model.CertificateModel
	if err := r.DB.WithContext(ctx).
		Where("certificate_id = ?", certificateID).
		First(&cert).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

// DeleteByID hard-deletes one row and reports how many rows went away.
func (r *CertificateRepository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&model.CertificateModel{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
