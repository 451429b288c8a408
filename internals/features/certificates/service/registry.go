package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"akcert_backend/internals/features/certificates/dto"
	"akcert_backend/internals/features/certificates/model"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store is the persistence the registry needs.
type Store interface {
	Create(ctx context.Context, cert *model.CertificateModel) error
	FindAll(ctx context.Context) ([]model.CertificateModel, error)
	FindByCertificateID(ctx context.Context, certificateID string) (*model.CertificateModel, error)
	DeleteByID(ctx context.Context, id uint) (int64, error)
}

type Registry struct {
	store    Store
	ids      IdentifierGenerator
	validate *validator.Validate
	now      func() time.Time
}

func NewRegistry(store Store, ids IdentifierGenerator) *Registry {
	return &Registry{
		store:    store,
		ids:      ids,
		validate: validator.New(),
		now:      time.Now,
	}
}

// WithClock overrides the clock used for created_at.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

/* ===================== LIST ===================== */

func (r *Registry) List(ctx context.Context) ([]model.CertificateModel, error) {
	rows, err := r.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return rows, nil
}

/* ===================== CREATE ===================== */

func (r *Registry) Create(ctx context.Context, req dto.CreateCertificateRequest) (*model.CertificateModel, error) {
	req.StudentName = strings.TrimSpace(req.StudentName)
	req.CourseName = strings.TrimSpace(req.CourseName)
	req.IssueDate = strings.TrimSpace(req.IssueDate)

	if err := r.validate.Struct(req); err != nil {
		return nil, toValidationError(err)
	}
	issueDate, err := ParseIssueDate(req.IssueDate)
	if err != nil {
		return nil, &ValidationError{
			Fields: FieldErrors{"issueDate": "date"},
			Reason: err.Error(),
		}
	}

	certificateID, err := r.ids.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate certificate id: %w", err)
	}

	cert := &model.CertificateModel{
		CertificateID: strings.ToUpper(certificateID),
		StudentName:   req.StudentName,
		CourseName:    req.CourseName,
		IssueDate:     datatypes.Date(issueDate),
		CreatedAt:     r.now().UTC(),
		Status:        model.CertificateStatusValid,
	}
	if err := r.store.Create(ctx, cert); err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: %s", ErrConstraintViolation, cert.CertificateID)
		}
		return nil, fmt.Errorf("create certificate: %w", err)
	}
	return cert, nil
}

/* ===================== DELETE ===================== */

func (r *Registry) Delete(ctx context.Context, id uint) error {
	n, err := r.store.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete certificate %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

/* ===================== PUBLIC LOOKUP ===================== */

// GetByPublicID matches the public identifier case-insensitively.
func (r *Registry) GetByPublicID(ctx context.Context, certificateID string) (*model.CertificateModel, error) {
	key := strings.ToUpper(strings.TrimSpace(certificateID))
	if key == "" {
		return nil, ErrNotFound
	}
	cert, err := r.store.FindByCertificateID(ctx, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find certificate %s: %w", key, err)
	}
	return cert, nil
}

/* ===================== HELPERS ===================== */

var issueDateLayouts = []string{
	dto.DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseIssueDate accepts a calendar date or an ISO date-time and keeps the date part.
func ParseIssueDate(s string) (time.Time, error) {
	for _, layout := range issueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("issueDate %q is not a valid date (YYYY-MM-DD)", s)
}

func toValidationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return &ValidationError{Reason: err.Error()}
	}
	fields := make(FieldErrors, len(ve))
	for _, fe := range ve {
		fields[jsonFieldName(fe.Field())] = fe.Tag()
	}
	return &ValidationError{Fields: fields}
}

func jsonFieldName(structField string) string {
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique constraint")
}
