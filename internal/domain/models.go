package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Claims are stored separately, keyed by
// (user_id, claim_number).
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	FullName     string    `db:"full_name" json:"fullName"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Claim is one medical invoice submission owned by exactly one user.
type Claim struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	UserID         uuid.UUID     `db:"user_id" json:"userId"`
	Seq            int64         `db:"seq" json:"-"`
	ClaimNumber    string        `db:"claim_number" json:"claimNumber"`
	Status         ClaimStatus   `db:"status" json:"status"`
	HolderDetails  HolderDetails `db:"holder_details" json:"holderDetails"`
	SourceImageURL string        `db:"source_image_url" json:"sourceImageUrl"`
	ParserModel    string        `db:"parser_model" json:"parserModel"`
	CreatedAt      time.Time     `db:"created_at" json:"createdAt"`
}

// HolderDetail holds the fields extracted from one invoice image. String
// fields are the model's output verbatim; Normalized carries the parsed forms.
type HolderDetail struct {
	PatientName       string            `json:"patientName"`
	DateOfClaim       string            `json:"dateOfClaim"`
	ProviderName      string            `json:"providerName"`
	ServiceDate       string            `json:"serviceDate"`
	TotalAmount       string            `json:"totalAmount"`
	ClaimStatus       string            `json:"claimStatus"`
	InsuranceProvider string            `json:"insuranceProvider"`
	Address           string            `json:"address"`
	Normalized        *NormalizedDetail `json:"normalized,omitempty"`
	Warnings          []string          `json:"warnings,omitempty"`
}

// NormalizedDetail holds machine-readable forms of the free-text fields.
// A nil pointer means the source value was empty or could not be parsed.
type NormalizedDetail struct {
	TotalAmountMinor *int64      `json:"totalAmountMinor,omitempty"`
	Currency         string      `json:"currency,omitempty"`
	DateOfClaim      *string     `json:"dateOfClaim,omitempty"`
	ServiceDate      *string     `json:"serviceDate,omitempty"`
	ClaimStatus      ClaimStatus `json:"claimStatus,omitempty"`
}

// HolderDetails is the JSONB column type for a claim's extracted details.
type HolderDetails []HolderDetail

// Value implements driver.Valuer.
func (h HolderDetails) Value() (driver.Value, error) {
	if h == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner.
func (h *HolderDetails) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*h = HolderDetails{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("HolderDetails.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(raw, h)
}

// ExtractionResult is the JSON object the extraction model is asked to return.
// It lives only for the duration of one request.
type ExtractionResult struct {
	PatientName       FlexString `json:"patient_name"`
	DateOfClaim       FlexString `json:"dateOfClaim"`
	ProviderName      FlexString `json:"provider_name"`
	Address           FlexString `json:"address"`
	ServiceDate       FlexString `json:"service_date"`
	ClaimNumber       FlexString `json:"claim_number"`
	TotalAmount       FlexString `json:"total_amount"`
	InsuranceProvider FlexString `json:"insurance_provider"`
	ClaimStatus       FlexString `json:"claim_status"`
}

// ToHolderDetail copies the verbatim extracted values into a HolderDetail.
// Fields the model returned as objects or arrays are kept as compact JSON
// text and reported in Warnings.
func (r *ExtractionResult) ToHolderDetail() HolderDetail {
	detail := HolderDetail{
		PatientName:       string(r.PatientName),
		DateOfClaim:       string(r.DateOfClaim),
		ProviderName:      string(r.ProviderName),
		ServiceDate:       string(r.ServiceDate),
		TotalAmount:       string(r.TotalAmount),
		ClaimStatus:       string(r.ClaimStatus),
		InsuranceProvider: string(r.InsuranceProvider),
		Address:           string(r.Address),
	}
	fields := []struct {
		name  string
		value FlexString
	}{
		{"patientName", r.PatientName},
		{"dateOfClaim", r.DateOfClaim},
		{"providerName", r.ProviderName},
		{"address", r.Address},
		{"serviceDate", r.ServiceDate},
		{"totalAmount", r.TotalAmount},
		{"insuranceProvider", r.InsuranceProvider},
		{"claimStatus", r.ClaimStatus},
	}
	for _, f := range fields {
		if f.value.Structured() {
			detail.Warnings = append(detail.Warnings, fmt.Sprintf("%s: structured value kept as JSON text", f.name))
		}
	}
	return detail
}

// FlexString accepts any JSON value and keeps its text. Models occasionally
// emit amounts and claim numbers as bare numbers, and addresses as objects.
// Objects and arrays are kept as compact JSON.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*f = FlexString(data)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return fmt.Errorf("FlexString: invalid JSON value %s", truncateBytes(data, 40))
		}
		*f = FlexString(buf.String())
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("FlexString: unsupported JSON value %s", truncateBytes(data, 40))
		}
		if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
			return fmt.Errorf("FlexString: invalid number %s", n)
		}
		*f = FlexString(n.String())
	}
	return nil
}

// Structured reports whether the value holds a JSON object or array.
func (f FlexString) Structured() bool {
	if len(f) == 0 || (f[0] != '{' && f[0] != '[') {
		return false
	}
	return json.Valid([]byte(f))
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// ClaimFilter narrows a claim listing.
type ClaimFilter struct {
	Status ClaimStatus
	Search string
	Offset int
	Limit  int
}

// ClaimStats summarizes a user's claims for the dashboard.
type ClaimStats struct {
	TotalClaims      int                 `json:"totalClaims"`
	ByStatus         map[ClaimStatus]int `json:"byStatus"`
	TotalsByCurrency map[string]int64    `json:"totalsByCurrency"`
	UnpricedClaims   int                 `json:"unpricedClaims"`
	LatestClaimAt    *time.Time          `json:"latestClaimAt,omitempty"`
}
