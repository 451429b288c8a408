package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"akcert_backend/internals/databases/dbtest"
	"akcert_backend/internals/features/certificates/dto"
	"akcert_backend/internals/features/certificates/model"
	"akcert_backend/internals/features/certificates/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticIDs struct{ id string }

func (s staticIDs) Generate() (string, error) { return s.id, nil }

type failingIDs struct{}

func (failingIDs) Generate() (string, error) { return "", errors.New("entropy exhausted") }

// tickingClock advances one second per call.
func tickingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

func newTestRegistry(t *testing.T, ids IdentifierGenerator) *Registry {
	t.Helper()
	return NewRegistry(repository.NewCertificateRepository(dbtest.New(t)), ids)
}

func validRequest() dto.CreateCertificateRequest {
	return dto.CreateCertificateRequest{StudentName: "Ada", CourseName: "Systems", IssueDate: "2024-01-01"}
}

func TestCreateReturnsValidCertificate(t *testing.T) {
	ids, err := NewIdentifierGenerator(IDModeLegacy)
	require.NoError(t, err)
	reg := newTestRegistry(t, ids)

	cert, err := reg.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotZero(t, cert.ID)
	assert.Regexp(t, `^AK-CERT-[0-9]+$`, cert.CertificateID)
	assert.LessOrEqual(t, len(cert.CertificateID), CertificateIDMaxLength)
	assert.Equal(t, "Ada", cert.StudentName)
	assert.Equal(t, "Systems", cert.CourseName)
	assert.Equal(t, model.CertificateStatusValid, cert.Status)
	assert.Equal(t, "2024-01-01", dto.FromModel(*cert).IssueDate)
	assert.False(t, cert.CreatedAt.IsZero())
}

func TestCreateUppercasesGeneratedID(t *testing.T) {
	reg := newTestRegistry(t, staticIDs{id: "ak-cert-abc"})

	cert, err := reg.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "AK-CERT-ABC", cert.CertificateID)
}

func TestCreateValidation(t *testing.T) {
	reg := newTestRegistry(t, staticIDs{id: "AK-CERT-1"})

	cases := []struct {
		name  string
		req   dto.CreateCertificateRequest
		field string
	}{
		{"missing student", dto.CreateCertificateRequest{CourseName: "Systems", IssueDate: "2024-01-01"}, "studentName"},
		{"blank course", dto.CreateCertificateRequest{StudentName: "Ada", CourseName: "   ", IssueDate: "2024-01-01"}, "courseName"},
		{"missing date", dto.CreateCertificateRequest{StudentName: "Ada", CourseName: "Systems"}, "issueDate"},
		{"unparsable date", dto.CreateCertificateRequest{StudentName: "Ada", CourseName: "Systems", IssueDate: "01/02/2024"}, "issueDate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reg.Create(context.Background(), tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tc.field)
		})
	}

	rows, err := reg.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCreateSurfacesIdentifierCollision(t *testing.T) {
	reg := newTestRegistry(t, staticIDs{id: "AK-CERT-170406720042"})

	_, err := reg.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = reg.Create(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstraintViolation)

	rows, err := reg.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCreatePropagatesGeneratorFailure(t *testing.T) {
	reg := newTestRegistry(t, failingIDs{})

	_, err := reg.Create(context.Background(), validRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestListReturnsNewestFirst(t *testing.T) {
	ids, err := NewIdentifierGenerator(IDModeFixed)
	require.NoError(t, err)
	reg := newTestRegistry(t, ids).WithClock(tickingClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)))

	const n = 5
	for i := 0; i < n; i++ {
		_, err := reg.Create(context.Background(), validRequest())
		require.NoError(t, err)
	}

	rows, err := reg.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, n)
	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].CreatedAt.After(rows[i-1].CreatedAt), "row %d is newer than row %d", i, i-1)
		assert.Less(t, rows[i].ID, rows[i-1].ID)
	}
}

func TestListBreaksTimestampTiesByKey(t *testing.T) {
	ids, err := NewIdentifierGenerator(IDModeFixed)
	require.NoError(t, err)
	same := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	reg := newTestRegistry(t, ids).WithClock(func() time.Time { return same })

	for i := 0; i < 3; i++ {
		_, err := reg.Create(context.Background(), validRequest())
		require.NoError(t, err)
	}

	rows, err := reg.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Greater(t, rows[0].ID, rows[1].ID)
	assert.Greater(t, rows[1].ID, rows[2].ID)
}

func TestDelete(t *testing.T) {
	reg := newTestRegistry(t, staticIDs{id: "AK-CERT-123"})
	ctx := context.Background()

	assert.ErrorIs(t, reg.Delete(ctx, 999), ErrNotFound)

	cert, err := reg.Create(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, reg.Delete(ctx, cert.ID))

	_, err = reg.GetByPublicID(ctx, cert.CertificateID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, reg.Delete(ctx, cert.ID), ErrNotFound)
}

func TestGetByPublicIDIsCaseInsensitive(t *testing.T) {
	reg := newTestRegistry(t, staticIDs{id: "AK-CERT-123"})
	ctx := context.Background()

	created, err := reg.Create(ctx, validRequest())
	require.NoError(t, err)

	for _, key := range []string{"AK-CERT-123", "ak-cert-123", "  Ak-Cert-123 "} {
		got, err := reg.GetByPublicID(ctx, key)
		require.NoError(t, err, key)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, dto.FromModel(*created), dto.FromModel(*got))
	}

	_, err = reg.GetByPublicID(ctx, "AK-CERT-404")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = reg.GetByPublicID(ctx, "  ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseIssueDate(t *testing.T) {
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2024-01-01",
		"2024-01-01T15:04:05Z",
		"2024-01-01T15:04:05+07:00",
		"2024-01-01T15:04:05.123",
		"2024-01-01T15:04",
		"2024-01-01 15:04:05",
	} {
		got, err := ParseIssueDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s -> %s", in, got)
	}

	for _, in := range []string{"", "2024-13-01", "2024/01/01", "yesterday"} {
		_, err := ParseIssueDate(in)
		assert.Error(t, err, in)
	}
}
