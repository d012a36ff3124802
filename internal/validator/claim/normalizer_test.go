package claim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"smartclaim/internal/config"
	"smartclaim/internal/domain"
	"smartclaim/internal/validator/claim"
)

var _ = Describe("Normalizer", func() {
	var detail domain.HolderDetail

	BeforeEach(func() {
		detail = domain.HolderDetail{
			PatientName:       "Jane Roe",
			DateOfClaim:       "03/01/2024",
			ProviderName:      "City Clinic",
			ServiceDate:       "Feb 27, 2024",
			TotalAmount:       "$1,250.00",
			ClaimStatus:       "Under Review",
			InsuranceProvider: "Acme Health",
			Address:           "1 Main St",
		}
	})

	Context("lenient mode", func() {
		var n *claim.Normalizer

		BeforeEach(func() {
			n = claim.NewNormalizer(&config.ExtractionConfig{DefaultCurrency: "USD"})
		})

		It("normalizes a well-formed invoice", func() {
			Expect(n.Normalize(&detail)).To(Succeed())

			Expect(detail.Normalized).NotTo(BeNil())
			Expect(*detail.Normalized.TotalAmountMinor).To(Equal(int64(125000)))
			Expect(detail.Normalized.Currency).To(Equal("USD"))
			Expect(*detail.Normalized.DateOfClaim).To(Equal("2024-03-01"))
			Expect(*detail.Normalized.ServiceDate).To(Equal("2024-02-27"))
			Expect(detail.Normalized.ClaimStatus).To(Equal(domain.ClaimStatusReview))
			Expect(detail.Warnings).To(BeEmpty())
		})

		It("keeps the verbatim strings untouched", func() {
			Expect(n.Normalize(&detail)).To(Succeed())
			Expect(detail.TotalAmount).To(Equal("$1,250.00"))
			Expect(detail.DateOfClaim).To(Equal("03/01/2024"))
			Expect(detail.ClaimStatus).To(Equal("Under Review"))
		})

		It("records warnings for fields it cannot parse", func() {
			detail.TotalAmount = "see attached"
			detail.ServiceDate = "sometime last week"

			Expect(n.Normalize(&detail)).To(Succeed())
			Expect(detail.Normalized.TotalAmountMinor).To(BeNil())
			Expect(detail.Normalized.ServiceDate).To(BeNil())
			Expect(detail.Warnings).To(HaveLen(2))
			Expect(detail.Warnings[0]).To(HavePrefix("totalAmount"))
			Expect(detail.Warnings[1]).To(HavePrefix("serviceDate"))
		})

		It("keeps warnings recorded before normalization", func() {
			detail.Warnings = []string{"address: structured value kept as JSON text"}
			detail.TotalAmount = "see attached"

			Expect(n.Normalize(&detail)).To(Succeed())
			Expect(detail.Warnings).To(HaveLen(2))
			Expect(detail.Warnings[0]).To(HavePrefix("address"))
			Expect(detail.Warnings[1]).To(HavePrefix("totalAmount"))
		})

		It("leaves empty fields unset without warnings", func() {
			detail = domain.HolderDetail{PatientName: "Jane"}

			Expect(n.Normalize(&detail)).To(Succeed())
			Expect(detail.Normalized.TotalAmountMinor).To(BeNil())
			Expect(detail.Normalized.DateOfClaim).To(BeNil())
			Expect(detail.Normalized.ClaimStatus).To(Equal(domain.ClaimStatusUnknown))
			Expect(detail.Warnings).To(BeEmpty())
		})

		It("falls back to the default currency", func() {
			n = claim.NewNormalizer(&config.ExtractionConfig{DefaultCurrency: "inr"})
			detail.TotalAmount = "4,500"

			Expect(n.Normalize(&detail)).To(Succeed())
			Expect(*detail.Normalized.TotalAmountMinor).To(Equal(int64(450000)))
			Expect(detail.Normalized.Currency).To(Equal("INR"))
		})
	})

	Context("strict mode", func() {
		var n *claim.Normalizer

		BeforeEach(func() {
			n = claim.NewNormalizer(&config.ExtractionConfig{StrictNormalization: true})
		})

		It("accepts a well-formed invoice", func() {
			Expect(n.Normalize(&detail)).To(Succeed())
		})

		It("rejects an unrecognized status", func() {
			detail.ClaimStatus = "???"

			err := n.Normalize(&detail)
			Expect(err).To(MatchError(domain.ErrUnparseableField))
			Expect(err.Error()).To(ContainSubstring("claimStatus"))
			Expect(detail.Normalized).To(BeNil())
		})
	})
})
