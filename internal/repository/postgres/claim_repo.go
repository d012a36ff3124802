package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smartclaim/internal/domain"
	"smartclaim/internal/port"
)

type claimRepo struct {
	db *sqlx.DB
}

// NewClaimRepo creates a new PostgreSQL-backed ClaimRepository.
func NewClaimRepo(db *sqlx.DB) port.ClaimRepository {
	return &claimRepo{db: db}
}

// Append inserts the claim unless the user already holds its claim number.
// The unique (user_id, claim_number) constraint makes the check and the write
// a single statement, so concurrent submissions cannot both succeed.
func (r *claimRepo) Append(ctx context.Context, claim *domain.Claim) error {
	if claim.ID == uuid.Nil {
		claim.ID = uuid.New()
	}
	claim.CreatedAt = time.Now().UTC()
	if claim.Status == "" {
		claim.Status = domain.ClaimStatusUnknown
	}

	query := `INSERT INTO claims (id, user_id, claim_number, status, holder_details,
		source_image_url, parser_model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, claim_number) DO NOTHING
		RETURNING seq`

	var seq int64
	err := r.db.QueryRowxContext(ctx, query,
		claim.ID, claim.UserID, claim.ClaimNumber, claim.Status, claim.HolderDetails,
		claim.SourceImageURL, claim.ParserModel, claim.CreatedAt).Scan(&seq)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return domain.ErrDuplicateClaim
		case pgErrorCode(err) == pgForeignKeyViolation:
			return domain.ErrNotFound
		case pgErrorCode(err) == pgUniqueViolation:
			return domain.ErrDuplicateClaim
		}
		return fmt.Errorf("claimRepo.Append: %w: %v", domain.ErrStorage, err)
	}
	claim.Seq = seq
	return nil
}

func (r *claimRepo) ListByUser(ctx context.Context, userID uuid.UUID, filter domain.ClaimFilter) ([]domain.Claim, int, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", userID); err != nil {
		return nil, 0, fmt.Errorf("claimRepo.ListByUser user lookup: %w: %v", domain.ErrStorage, err)
	}
	if !exists {
		return nil, 0, domain.ErrNotFound
	}

	where, args := buildClaimFilter(userID, filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM claims WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("claimRepo.ListByUser count: %w: %v", domain.ErrStorage, err)
	}

	query := "SELECT * FROM claims WHERE " + where + " ORDER BY seq ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	claims := []domain.Claim{}
	if err := r.db.SelectContext(ctx, &claims, query, args...); err != nil {
		return nil, 0, fmt.Errorf("claimRepo.ListByUser: %w: %v", domain.ErrStorage, err)
	}
	return claims, total, nil
}

// buildClaimFilter returns a WHERE clause (without the keyword) and its args.
func buildClaimFilter(userID uuid.UUID, filter domain.ClaimFilter) (string, []interface{}) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(claim_number ILIKE $%d OR holder_details->0->>'patientName' ILIKE $%d OR holder_details->0->>'providerName' ILIKE $%d)",
			n, n, n))
	}
	return strings.Join(conditions, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *claimRepo) GetByNumber(ctx context.Context, userID uuid.UUID, claimNumber string) (*domain.Claim, error) {
	var claim domain.Claim
	err := r.db.GetContext(ctx, &claim,
		"SELECT * FROM claims WHERE user_id = $1 AND claim_number = $2", userID, claimNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("claimRepo.GetByNumber: %w: %v", domain.ErrStorage, err)
	}
	return &claim, nil
}

func (r *claimRepo) Delete(ctx context.Context, userID uuid.UUID, claimNumber string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM claims WHERE user_id = $1 AND claim_number = $2", userID, claimNumber)
	if err != nil {
		return fmt.Errorf("claimRepo.Delete: %w: %v", domain.ErrStorage, err)
	}
	return deletedOne(result)
}

func deletedOne(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("claimRepo.Delete: %w: %v", domain.ErrStorage, err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
