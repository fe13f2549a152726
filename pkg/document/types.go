package document

// Document types accepted by the commissioning endpoint.
const (
	// TypeIntroduceGoods is the commissioning document for goods produced
	// in the Russian Federation.
	TypeIntroduceGoods = "LP_INTRODUCE_GOODS"
)

// Production types.
const (
	ProductionTypeOwn      = "OWN_PRODUCTION"
	ProductionTypeContract = "CONTRACT_PRODUCTION"
)

// Certificate document types.
const (
	CertificateConformity  = "CONFORMITY_CERTIFICATE"
	CertificateDeclaration = "CONFORMITY_DECLARATION"
)

// Document is a goods-commissioning document.
//
// JSON field names follow the CRPT wire format exactly; note that
// description.participantInn is camel case while everything else is
// snake case.
type Document struct {
	// Description wraps the participant INN in the nested form some
	// integrations use instead of the top-level participant_inn.
	Description *Description `json:"description,omitempty"`

	// DocID is the document identifier assigned by the sender.
	DocID string `json:"doc_id,omitempty"`

	// DocStatus is the document lifecycle status (e.g. "NEW").
	DocStatus string `json:"doc_status,omitempty"`

	// DocType is the document type; TypeIntroduceGoods for commissioning.
	DocType string `json:"doc_type"`

	// ImportRequest marks documents for imported goods.
	ImportRequest *bool `json:"importRequest,omitempty"`

	// OwnerINN is the tax number of the goods owner.
	OwnerINN string `json:"owner_inn,omitempty"`

	// ParticipantINN is the tax number of the turnover participant.
	ParticipantINN string `json:"participant_inn,omitempty"`

	// ProducerINN is the tax number of the producer.
	ProducerINN string `json:"producer_inn,omitempty"`

	// ProductionDate is the production date in YYYY-MM-DD form.
	ProductionDate string `json:"production_date,omitempty"`

	// ProductionType is ProductionTypeOwn or ProductionTypeContract.
	ProductionType string `json:"production_type,omitempty"`

	// Products lists the marked products covered by this document.
	Products []Product `json:"products,omitempty"`

	// RegDate is the registration timestamp (YYYY-MM-DDTHH:mm:ss).
	RegDate string `json:"reg_date,omitempty"`

	// RegNumber is the registration number assigned by the system.
	RegNumber string `json:"reg_number,omitempty"`
}

// Description holds the nested participant INN form.
type Description struct {
	ParticipantINN string `json:"participantInn,omitempty"`
}

// Product is a single marked product inside a commissioning document.
type Product struct {
	// CertificateDocument is CertificateConformity or CertificateDeclaration.
	CertificateDocument string `json:"certificate_document,omitempty"`

	// CertificateDocumentDate is the certificate date (YYYY-MM-DD).
	CertificateDocumentDate string `json:"certificate_document_date,omitempty"`

	// CertificateDocumentNumber is the certificate number.
	CertificateDocumentNumber string `json:"certificate_document_number,omitempty"`

	// OwnerINN is the tax number of the product owner.
	OwnerINN string `json:"owner_inn,omitempty"`

	// ProducerINN is the tax number of the product producer.
	ProducerINN string `json:"producer_inn,omitempty"`

	// ProductionDate is the product's own production date (YYYY-MM-DD)
	// when it differs from the document-level date.
	ProductionDate string `json:"production_date,omitempty"`

	// TNVEDCode is the 10-digit customs nomenclature code.
	TNVEDCode string `json:"tnved_code,omitempty"`

	// UITCode is the unit identification code (KI).
	UITCode string `json:"uit_code,omitempty"`

	// UITUCode is the aggregate identification code (KITU).
	UITUCode string `json:"uitu_code,omitempty"`
}

// TradeParticipantINN returns the participant INN, preferring the top-level
// field and falling back to the nested description form.
func (d *Document) TradeParticipantINN() string {
	if d.ParticipantINN != "" {
		return d.ParticipantINN
	}
	if d.Description != nil {
		return d.Description.ParticipantINN
	}
	return ""
}
