// Package claim normalizes the free-text fields extracted from a claim invoice.
package claim

import (
	"fmt"
	"strings"

	"smartclaim/internal/config"
	"smartclaim/internal/domain"
)

// Normalizer fills HolderDetail.Normalized from the verbatim extracted strings.
type Normalizer struct {
	strict          bool
	defaultCurrency string
}

// NewNormalizer creates a Normalizer from extraction config.
func NewNormalizer(cfg *config.ExtractionConfig) *Normalizer {
	currency := strings.ToUpper(strings.TrimSpace(cfg.DefaultCurrency))
	if currency == "" {
		currency = "USD"
	}
	return &Normalizer{strict: cfg.StrictNormalization, defaultCurrency: currency}
}

// Normalize parses the amount, dates and status of detail in place. Empty
// fields are left unset. Non-empty fields that cannot be parsed are reported
// in detail.Warnings, or as ErrUnparseableField when the normalizer is strict.
func (n *Normalizer) Normalize(detail *domain.HolderDetail) error {
	norm := &domain.NormalizedDetail{ClaimStatus: domain.ClaimStatusUnknown}
	var warnings []string

	if strings.TrimSpace(detail.TotalAmount) != "" {
		minor, currency, err := ParseAmount(detail.TotalAmount, n.defaultCurrency)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("totalAmount: %v", err))
		} else {
			norm.TotalAmountMinor = &minor
			norm.Currency = currency
		}
	}

	if strings.TrimSpace(detail.DateOfClaim) != "" {
		if iso, err := ParseDate(detail.DateOfClaim); err != nil {
			warnings = append(warnings, fmt.Sprintf("dateOfClaim: %v", err))
		} else {
			norm.DateOfClaim = &iso
		}
	}

	if strings.TrimSpace(detail.ServiceDate) != "" {
		if iso, err := ParseDate(detail.ServiceDate); err != nil {
			warnings = append(warnings, fmt.Sprintf("serviceDate: %v", err))
		} else {
			norm.ServiceDate = &iso
		}
	}

	if strings.TrimSpace(detail.ClaimStatus) != "" {
		if status, ok := ParseStatus(detail.ClaimStatus); ok {
			norm.ClaimStatus = status
		} else {
			warnings = append(warnings, fmt.Sprintf("claimStatus: unrecognized status %q", detail.ClaimStatus))
		}
	}

	if n.strict && len(warnings) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrUnparseableField, strings.Join(warnings, "; "))
	}

	detail.Normalized = norm
	detail.Warnings = append(detail.Warnings, warnings...)
	return nil
}
