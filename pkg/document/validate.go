package document

import (
	"fmt"
	"time"
)

// ValidationError reports a document field that fails validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("document validation failed on %s: %s", e.Field, e.Message)
}

// Validate checks that the document is well-formed enough to submit.
// It verifies required fields, date formats, and code lengths. It does not
// verify INN checksums; the API rejects those server-side.
func (d *Document) Validate() error {
	if d.DocType == "" {
		return &ValidationError{Field: "doc_type", Message: "is required"}
	}
	if d.TradeParticipantINN() == "" {
		return &ValidationError{
			Field:   "participant_inn",
			Message: "is required (top-level or description.participantInn)",
		}
	}
	if d.ProductionDate != "" {
		if err := checkDate(d.ProductionDate); err != nil {
			return &ValidationError{Field: "production_date", Message: err.Error()}
		}
	}
	if d.ProductionType != "" &&
		d.ProductionType != ProductionTypeOwn &&
		d.ProductionType != ProductionTypeContract {
		return &ValidationError{
			Field:   "production_type",
			Message: fmt.Sprintf("must be %s or %s", ProductionTypeOwn, ProductionTypeContract),
		}
	}

	for i := range d.Products {
		if err := d.Products[i].validate(); err != nil {
			return fmt.Errorf("product %d: %w", i, err)
		}
	}

	return nil
}

func (p *Product) validate() error {
	if p.TNVEDCode != "" && len(p.TNVEDCode) != 10 {
		return &ValidationError{
			Field:   "tnved_code",
			Message: fmt.Sprintf("must be 10 digits, got %d characters", len(p.TNVEDCode)),
		}
	}
	if p.ProductionDate != "" {
		if err := checkDate(p.ProductionDate); err != nil {
			return &ValidationError{Field: "production_date", Message: err.Error()}
		}
	}
	if p.CertificateDocumentDate != "" {
		if err := checkDate(p.CertificateDocumentDate); err != nil {
			return &ValidationError{Field: "certificate_document_date", Message: err.Error()}
		}
	}
	if p.CertificateDocument != "" &&
		p.CertificateDocument != CertificateConformity &&
		p.CertificateDocument != CertificateDeclaration {
		return &ValidationError{
			Field:   "certificate_document",
			Message: fmt.Sprintf("must be %s or %s", CertificateConformity, CertificateDeclaration),
		}
	}
	return nil
}

func checkDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("must be YYYY-MM-DD, got %q", s)
	}
	return nil
}
