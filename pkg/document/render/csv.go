package render

import (
	"bytes"
	"encoding/csv"

	"ismp-hq/crptgate/pkg/document"
)

// csvHeader is the column set of the CRPT CSV upload template, in the
// order the template defines them.
var csvHeader = []string{
	"Тип документа",
	"ИНН участника оборота товаров",
	"Дата производства",
	"ИНН производителя товара",
	"ИНН собственника товаров",
	"Тип производственного заказа",
	"КИ",
	"КИТУ",
	"Код товарной номенклатуры (10 знаков)",
	"Дата производства товара",
	"Документ обязательной сертификации",
	"Номер документа",
	"Дата документа",
}

// CSVRenderer renders a document as the CSV upload format: a header row
// followed by one row per product. Document-level fields repeat on every
// row. A document without products renders as a single row with the product
// columns empty.
type CSVRenderer struct{}

// Render implements Renderer. Quoting and escaping follow encoding/csv
// (RFC 4180): fields containing commas, quotes, or newlines are quoted and
// inner quotes doubled.
func (r *CSVRenderer) Render(doc *document.Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	docCols := []string{
		doc.DocType,
		doc.TradeParticipantINN(),
		doc.ProductionDate,
		doc.ProducerINN,
		doc.OwnerINN,
		doc.ProductionType,
	}

	if len(doc.Products) == 0 {
		row := append(append([]string{}, docCols...), "", "", "", "", "", "", "")
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	for i := range doc.Products {
		p := &doc.Products[i]
		row := append(append([]string{}, docCols...),
			p.UITCode,
			p.UITUCode,
			p.TNVEDCode,
			p.ProductionDate,
			p.CertificateDocument,
			p.CertificateDocumentNumber,
			p.CertificateDocumentDate,
		)
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ContentType implements Renderer.
func (r *CSVRenderer) ContentType() string {
	return "text/csv; charset=utf-8"
}
