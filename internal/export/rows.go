// Package export renders a user's claims as CSV or XLSX downloads.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"smartclaim/internal/domain"
)

// Columns is the header row shared by every export format.
var Columns = []string{
	"Claim Number",
	"Status",
	"Patient Name",
	"Provider Name",
	"Insurance Provider",
	"Date of Claim",
	"Service Date",
	"Total Amount",
	"Amount",
	"Currency",
	"Claim Status (as printed)",
	"Address",
	"Warnings",
	"Source Image",
	"Model",
	"Created At",
}

// claimToRow flattens a claim into len(Columns) cells. Only the first holder
// detail is exported; dates prefer the normalized ISO form when available.
func claimToRow(c *domain.Claim) []string {
	row := make([]string, len(Columns))

	row[0] = c.ClaimNumber
	row[1] = string(c.Status)
	row[13] = c.SourceImageURL
	row[14] = c.ParserModel
	row[15] = c.CreatedAt.UTC().Format(time.RFC3339)

	if len(c.HolderDetails) == 0 {
		return row
	}
	d := c.HolderDetails[0]

	row[2] = d.PatientName
	row[3] = d.ProviderName
	row[4] = d.InsuranceProvider
	row[5] = d.DateOfClaim
	row[6] = d.ServiceDate
	row[7] = d.TotalAmount
	row[10] = d.ClaimStatus
	row[11] = d.Address
	row[12] = strings.Join(d.Warnings, "; ")

	if n := d.Normalized; n != nil {
		if n.DateOfClaim != nil {
			row[5] = *n.DateOfClaim
		}
		if n.ServiceDate != nil {
			row[6] = *n.ServiceDate
		}
		if n.TotalAmountMinor != nil {
			row[8] = FormatMinorUnits(*n.TotalAmountMinor, n.Currency)
			row[9] = n.Currency
		}
	}
	return row
}

// FormatMinorUnits renders minor units as a plain decimal, e.g. 125000 USD -> "1250.00".
func FormatMinorUnits(minor int64, currency string) string {
	if currency == "JPY" {
		return strconv.FormatInt(minor, 10)
	}
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "claims"
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), time.Now().Format("2006-01-02"), ext)
}
