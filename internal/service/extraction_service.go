package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"smartclaim/internal/domain"
	"smartclaim/internal/parser"
	"smartclaim/internal/port"
	claimvalidator "smartclaim/internal/validator/claim"
)

// SubmitClaimInput is the DTO for submitting an invoice image for extraction.
type SubmitClaimInput struct {
	UserID   uuid.UUID
	ImageURL string
}

// ExtractionService turns an invoice image into a stored claim.
type ExtractionService interface {
	Submit(ctx context.Context, input SubmitClaimInput) (*domain.Claim, error)
}

type extractionService struct {
	userRepo    port.UserRepository
	claimRepo   port.ClaimRepository
	fetcher     port.ImageFetcher
	parser      port.DocumentParser
	normalizer  *claimvalidator.Normalizer
	emailSender port.EmailSender
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(
	userRepo port.UserRepository,
	claimRepo port.ClaimRepository,
	fetcher port.ImageFetcher,
	docParser port.DocumentParser,
	normalizer *claimvalidator.Normalizer,
	emailSender port.EmailSender,
) ExtractionService {
	return &extractionService{
		userRepo:    userRepo,
		claimRepo:   claimRepo,
		fetcher:     fetcher,
		parser:      docParser,
		normalizer:  normalizer,
		emailSender: emailSender,
	}
}

// Submit fetches the image, asks the model for the claim fields, validates and
// normalizes them, and appends the claim to the user's list. Each stage fails
// with its own domain error; nothing is stored unless every stage succeeds.
func (s *extractionService) Submit(ctx context.Context, input SubmitClaimInput) (*domain.Claim, error) {
	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL == "" {
		return nil, domain.ErrMissingInput
	}

	img, err := s.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		log.Printf("extraction.Submit: fetch failed for user %s: %v", input.UserID, err)
		return nil, classifyFetchError(err)
	}

	prompt := parser.BuildClaimExtractionPrompt()
	out, err := s.parser.Parse(ctx, port.ParseInput{
		FileBytes:   img.Data,
		Base64Data:  img.Base64,
		ContentType: img.ContentType,
		Prompt:      prompt,
	})
	if err != nil {
		log.Printf("extraction.Submit: model call failed for user %s: %v", input.UserID, err)
		return nil, classifyParserError(err)
	}

	result, err := parser.DecodeExtraction(out.RawText)
	if err != nil {
		log.Printf("extraction.Submit: unparseable model output for user %s: %v", input.UserID, err)
		return nil, err
	}

	claimNumber := strings.TrimSpace(string(result.ClaimNumber))
	if claimNumber == "" || result.ClaimNumber.Structured() {
		return nil, fmt.Errorf("%w: claim_number is required", domain.ErrValidationFailed)
	}

	detail := result.ToHolderDetail()
	if err := s.normalizer.Normalize(&detail); err != nil {
		return nil, err
	}

	status := domain.ClaimStatusUnknown
	if detail.Normalized != nil && detail.Normalized.ClaimStatus != "" {
		status = detail.Normalized.ClaimStatus
	}

	claim := &domain.Claim{
		ID:             uuid.New(),
		UserID:         input.UserID,
		ClaimNumber:    claimNumber,
		Status:         status,
		HolderDetails:  domain.HolderDetails{detail},
		SourceImageURL: imageURL,
		ParserModel:    out.ModelUsed,
	}
	if err := s.claimRepo.Append(ctx, claim); err != nil {
		return nil, err
	}

	log.Printf("extraction.Submit: stored claim %s for user %s (model %s)", claimNumber, input.UserID, out.ModelUsed)
	s.notifyClaimRecorded(ctx, claim)

	return claim, nil
}

func (s *extractionService) notifyClaimRecorded(ctx context.Context, claim *domain.Claim) {
	user, err := s.userRepo.GetByID(ctx, claim.UserID)
	if err != nil {
		log.Printf("extraction.notifyClaimRecorded: failed to load user %s: %v", claim.UserID, err)
		return
	}
	if err := s.emailSender.SendClaimRecordedEmail(ctx, user.Email, user.FullName, claim.ClaimNumber); err != nil {
		log.Printf("extraction.notifyClaimRecorded: failed to send email for claim %s: %v", claim.ClaimNumber, err)
	}
}

func classifyFetchError(err error) error {
	for _, known := range []error{
		domain.ErrMissingInput,
		domain.ErrInvalidImageURL,
		domain.ErrUnsupportedFileType,
		domain.ErrFileTooLarge,
		domain.ErrFetchFailed,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
}

func classifyParserError(err error) error {
	var rlErr *parser.RateLimitError
	if errors.As(err, &rlErr) {
		return fmt.Errorf("%w: retry after %s", domain.ErrExtractionRateLimited, rlErr.RetryAfter)
	}
	if errors.Is(err, domain.ErrExtractionRateLimited) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
}
