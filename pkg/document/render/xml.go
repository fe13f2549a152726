package render

import (
	"bytes"
	"encoding/xml"

	"ismp-hq/crptgate/pkg/document"
)

// XMLRenderer renders a document as the XML upload format: a vvod envelope
// with action_id="05" (goods commissioning) and the products list.
type XMLRenderer struct{}

// vvod is the commissioning envelope. Element names follow the CRPT XML
// template; escaping is handled by encoding/xml.
type vvod struct {
	XMLName             xml.Name     `xml:"vvod"`
	ActionID            string       `xml:"action_id,attr"`
	Version             string       `xml:"version,attr"`
	TradeParticipantINN string       `xml:"trade_participant_inn,omitempty"`
	ProducerINN         string       `xml:"producer_inn,omitempty"`
	OwnerINN            string       `xml:"owner_inn,omitempty"`
	ProductDate         string       `xml:"product_date,omitempty"`
	ProductionOrder     string       `xml:"production_order,omitempty"`
	Products            productsList `xml:"products_list"`
}

type productsList struct {
	Products []xmlProduct `xml:"product"`
}

type xmlProduct struct {
	Kit               string `xml:"kit,omitempty"`
	Kitu              string `xml:"kitu,omitempty"`
	ProductDate       string `xml:"product_date,omitempty"`
	TNVEDCode         string `xml:"tnved_code,omitempty"`
	CertificateType   string `xml:"certificate_type,omitempty"`
	CertificateNumber string `xml:"certificate_number,omitempty"`
	CertificateDate   string `xml:"certificate_date,omitempty"`
}

// Render implements Renderer.
func (r *XMLRenderer) Render(doc *document.Document) ([]byte, error) {
	env := vvod{
		ActionID:            "05",
		Version:             "5",
		TradeParticipantINN: doc.TradeParticipantINN(),
		ProducerINN:         doc.ProducerINN,
		OwnerINN:            doc.OwnerINN,
		ProductDate:         doc.ProductionDate,
		ProductionOrder:     doc.ProductionType,
	}

	for i := range doc.Products {
		p := &doc.Products[i]
		env.Products.Products = append(env.Products.Products, xmlProduct{
			Kit:               p.UITCode,
			Kitu:              p.UITUCode,
			ProductDate:       p.ProductionDate,
			TNVEDCode:         p.TNVEDCode,
			CertificateType:   p.CertificateDocument,
			CertificateNumber: p.CertificateDocumentNumber,
			CertificateDate:   p.CertificateDocumentDate,
		})
	}

	body, err := xml.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ContentType implements Renderer.
func (r *XMLRenderer) ContentType() string {
	return "application/xml; charset=utf-8"
}
