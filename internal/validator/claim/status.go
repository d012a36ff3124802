package claim

import (
	"strings"

	"smartclaim/internal/domain"
)

var statusSynonyms = map[string]domain.ClaimStatus{
	"submitted":        domain.ClaimStatusSubmitted,
	"filed":            domain.ClaimStatusSubmitted,
	"received":         domain.ClaimStatusSubmitted,
	"new":              domain.ClaimStatusSubmitted,
	"pending":          domain.ClaimStatusPending,
	"awaiting":         domain.ClaimStatusPending,
	"on hold":          domain.ClaimStatusPending,
	"open":             domain.ClaimStatusPending,
	"processing":       domain.ClaimStatusProcessing,
	"in process":       domain.ClaimStatusProcessing,
	"in progress":      domain.ClaimStatusProcessing,
	"under processing": domain.ClaimStatusProcessing,
	"review":           domain.ClaimStatusReview,
	"in review":        domain.ClaimStatusReview,
	"under review":     domain.ClaimStatusReview,
	"adjudication":     domain.ClaimStatusReview,
	"approved":         domain.ClaimStatusApproved,
	"accepted":         domain.ClaimStatusApproved,
	"paid":             domain.ClaimStatusApproved,
	"settled":          domain.ClaimStatusApproved,
	"rejected":         domain.ClaimStatusRejected,
	"denied":           domain.ClaimStatusRejected,
	"declined":         domain.ClaimStatusRejected,
}

// Keyword fallbacks, checked in order. Negative outcomes come first so that
// "not approved" maps to rejected.
var statusKeywords = []struct {
	keyword string
	status  domain.ClaimStatus
}{
	{"not approved", domain.ClaimStatusRejected},
	{"reject", domain.ClaimStatusRejected},
	{"denied", domain.ClaimStatusRejected},
	{"declin", domain.ClaimStatusRejected},
	{"approv", domain.ClaimStatusApproved},
	{"paid", domain.ClaimStatusApproved},
	{"settled", domain.ClaimStatusApproved},
	{"review", domain.ClaimStatusReview},
	{"process", domain.ClaimStatusProcessing},
	{"progress", domain.ClaimStatusProcessing},
	{"pending", domain.ClaimStatusPending},
	{"await", domain.ClaimStatusPending},
	{"submit", domain.ClaimStatusSubmitted},
}

// ParseStatus maps free-text claim status onto the status vocabulary.
func ParseStatus(s string) (domain.ClaimStatus, bool) {
	text := strings.ToLower(strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '.' || r == '\t' || r == '\n'
	}), " "))
	if text == "" {
		return domain.ClaimStatusUnknown, false
	}
	if status, ok := statusSynonyms[text]; ok {
		return status, true
	}
	for _, kw := range statusKeywords {
		if strings.Contains(text, kw.keyword) {
			return kw.status, true
		}
	}
	return domain.ClaimStatusUnknown, false
}
