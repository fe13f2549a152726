package document

import (
	"errors"
	"testing"
)

func validDocument() *Document {
	return &Document{
		DocID:          "doc-0001",
		DocStatus:      "NEW",
		DocType:        TypeIntroduceGoods,
		OwnerINN:       "7700000000",
		ParticipantINN: "7700000000",
		ProducerINN:    "7700000000",
		ProductionDate: "2025-08-10",
		ProductionType: ProductionTypeOwn,
		Products: []Product{
			{
				UITCode:                   "11111111111111111111111111111111111111",
				UITUCode:                  "000000000000000000",
				TNVEDCode:                 "6401921000",
				ProductionDate:            "2025-08-10",
				CertificateDocument:       CertificateConformity,
				CertificateDocumentNumber: "CERT-1",
				CertificateDocumentDate:   "2025-08-10",
			},
		},
	}
}

func TestDocument_Validate(t *testing.T) {
	if err := validDocument().Validate(); err != nil {
		t.Errorf("Expected valid document, got %v", err)
	}
}

func TestDocument_Validate_MissingDocType(t *testing.T) {
	doc := validDocument()
	doc.DocType = ""

	var verr *ValidationError
	err := doc.Validate()
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if verr.Field != "doc_type" {
		t.Errorf("Expected doc_type field, got %q", verr.Field)
	}
}

func TestDocument_Validate_ParticipantFallback(t *testing.T) {
	doc := validDocument()
	doc.ParticipantINN = ""
	doc.Description = &Description{ParticipantINN: "7800000000"}

	if err := doc.Validate(); err != nil {
		t.Errorf("Expected description.participantInn to satisfy requirement, got %v", err)
	}
	if got := doc.TradeParticipantINN(); got != "7800000000" {
		t.Errorf("Expected fallback INN 7800000000, got %q", got)
	}

	doc.Description = nil
	if err := doc.Validate(); err == nil {
		t.Error("Expected error with no participant INN anywhere")
	}
}

func TestDocument_Validate_BadDate(t *testing.T) {
	doc := validDocument()
	doc.ProductionDate = "10.08.2025"

	if err := doc.Validate(); err == nil {
		t.Error("Expected error for non-ISO production date")
	}
}

func TestDocument_Validate_BadTNVED(t *testing.T) {
	doc := validDocument()
	doc.Products[0].TNVEDCode = "123"

	if err := doc.Validate(); err == nil {
		t.Error("Expected error for short TNVED code")
	}
}

func TestDocument_Validate_BadCertificateType(t *testing.T) {
	doc := validDocument()
	doc.Products[0].CertificateDocument = "SOMETHING_ELSE"

	if err := doc.Validate(); err == nil {
		t.Error("Expected error for unknown certificate document type")
	}
}
