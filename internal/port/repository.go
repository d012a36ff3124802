package port

import (
	"context"

	"github.com/google/uuid"

	"smartclaim/internal/domain"
)

// UserRepository defines the contract for the credential store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}

// ClaimRepository defines the contract for claim persistence.
// Claims are keyed by (userID, claimNumber); Append is an atomic insert-if-absent.
type ClaimRepository interface {
	Append(ctx context.Context, claim *domain.Claim) error
	ListByUser(ctx context.Context, userID uuid.UUID, filter domain.ClaimFilter) ([]domain.Claim, int, error)
	GetByNumber(ctx context.Context, userID uuid.UUID, claimNumber string) (*domain.Claim, error)
	Delete(ctx context.Context, userID uuid.UUID, claimNumber string) error
}
