package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smartpemda/sitagih/internal/claim/domain"
	"github.com/smartpemda/sitagih/internal/numbering"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, claim *domain.Claim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Claim, error) {
	var claim domain.Claim
	err := r.db.WithContext(ctx).First(&claim, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &claim, nil
}

func (r *repo) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Claim, error) {
	var claims []*domain.Claim
	stmt := r.db.WithContext(ctx).Model(&domain.Claim{})

	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if agency := strings.TrimSpace(filter.AgencyCode); agency != "" {
		stmt = stmt.Where("agency_code = ?", agency)
	}
	if filter.From != nil {
		stmt = stmt.Where("submitted_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		stmt = stmt.Where("submitted_at < ?", filter.To.UTC())
	}
	if filter.Cursor != nil {
		stmt = stmt.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			filter.Cursor.CreatedAt,
			filter.Cursor.CreatedAt,
			filter.Cursor.ID,
		)
	}

	stmt = stmt.Order("created_at desc, id desc")
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit + 1)
	}

	if err := stmt.Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *repo) UpdateTransition(ctx context.Context, tx *gorm.DB, id snowflake.ID, expectedVersion int64, fields map[string]any) (int64, error) {
	conn := r.db
	if tx != nil {
		conn = tx
	}

	fields["version"] = expectedVersion + 1
	fields["updated_at"] = time.Now().UTC()

	res := conn.WithContext(ctx).
		Model(&domain.Claim{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(fields)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Numbers implements numbering.Source: every non-null number of the scheme
// whose stamp falls in [from, to).
func (r *repo) Numbers(ctx context.Context, scheme numbering.Scheme, from, to time.Time) ([]string, error) {
	numberCol, stampCol, err := schemeColumns(scheme)
	if err != nil {
		return nil, err
	}

	stmt := r.db.WithContext(ctx).
		Model(&domain.Claim{}).
		Where(numberCol+" IS NOT NULL").
		Where(stampCol+" >= ? AND "+stampCol+" < ?", from, to)

	// The corrected-return path back-fills the verification display fields
	// with the correction number; keep those out of the verification counter.
	switch scheme {
	case numbering.SchemeRegistration:
		stmt = stmt.Where(numberCol+" LIKE ?", "REG-%")
	case numbering.SchemeVerification:
		stmt = stmt.Where(numberCol+" LIKE ?", "VER-%")
	}

	var numbers []string
	err = stmt.Pluck(numberCol, &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

func (r *repo) MaxDisbursementSeq(ctx context.Context, from, to time.Time) (int64, error) {
	var max *int64
	err := r.db.WithContext(ctx).
		Model(&domain.Claim{}).
		Where("disbursement_seq IS NOT NULL").
		Where("sp2d_registered_at >= ? AND sp2d_registered_at < ?", from, to).
		Select("MAX(disbursement_seq)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func schemeColumns(scheme numbering.Scheme) (string, string, error) {
	switch scheme {
	case numbering.SchemeSubmission:
		return "spm_number", "submitted_at", nil
	case numbering.SchemeRegistration:
		return "registration_number", "registered_at", nil
	case numbering.SchemeVerification:
		return "verification_number", "verified_at", nil
	case numbering.SchemeCorrection:
		return "correction_number", "corrected_at", nil
	default:
		return "", "", fmt.Errorf("unknown numbering scheme %q", scheme)
	}
}
