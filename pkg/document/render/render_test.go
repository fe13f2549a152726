package render

import (
	"encoding/json"
	"strings"
	"testing"

	"ismp-hq/crptgate/pkg/document"
)

func sampleDocument() *document.Document {
	return &document.Document{
		DocID:          "doc-0001",
		DocStatus:      "NEW",
		DocType:        document.TypeIntroduceGoods,
		OwnerINN:       "7700000000",
		ParticipantINN: "7700000000",
		ProducerINN:    "7700000000",
		ProductionDate: "2025-08-10",
		ProductionType: document.ProductionTypeOwn,
		Description:    &document.Description{ParticipantINN: "7700000000"},
		Products: []document.Product{
			{
				UITCode:                   "11111111111111111111111111111111111111",
				UITUCode:                  "000000000000000000",
				TNVEDCode:                 "6401921000",
				ProductionDate:            "2025-08-10",
				CertificateDocument:       document.CertificateConformity,
				CertificateDocumentNumber: "CERT-1",
				CertificateDocumentDate:   "2025-08-10",
			},
			{
				UITCode:                   "22222222222222222222222222222222222222",
				TNVEDCode:                 "8711209200",
				CertificateDocument:       document.CertificateDeclaration,
				CertificateDocumentNumber: "DECL-1",
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "csv", "xml"} {
		f, err := ParseFormat(s)
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", s, err)
		}
		if string(f) != s {
			t.Errorf("ParseFormat(%q) = %q", s, f)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestForFormat(t *testing.T) {
	cases := []struct {
		format      Format
		contentType string
	}{
		{FormatJSON, "application/json"},
		{FormatCSV, "text/csv; charset=utf-8"},
		{FormatXML, "application/xml; charset=utf-8"},
	}

	for _, tc := range cases {
		r, err := ForFormat(tc.format)
		if err != nil {
			t.Fatalf("ForFormat(%q) failed: %v", tc.format, err)
		}
		if got := r.ContentType(); got != tc.contentType {
			t.Errorf("ContentType for %q = %q, want %q", tc.format, got, tc.contentType)
		}
	}
}

func TestJSONRenderer_WireFieldNames(t *testing.T) {
	body, err := (&JSONRenderer{}).Render(sampleDocument())
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Rendered JSON does not parse: %v", err)
	}

	for _, key := range []string{"doc_id", "doc_type", "owner_inn", "participant_inn", "production_date", "products"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Missing wire field %q", key)
		}
	}

	// The nested participant INN uses camel case on the wire.
	desc, ok := decoded["description"].(map[string]any)
	if !ok {
		t.Fatal("Missing description object")
	}
	if _, ok := desc["participantInn"]; !ok {
		t.Error("Missing description.participantInn")
	}

	products, ok := decoded["products"].([]any)
	if !ok || len(products) != 2 {
		t.Fatalf("Expected 2 products, got %v", decoded["products"])
	}
	first := products[0].(map[string]any)
	if first["uit_code"] != "11111111111111111111111111111111111111" {
		t.Errorf("Unexpected uit_code: %v", first["uit_code"])
	}
}

func TestCSVRenderer_RowPerProduct(t *testing.T) {
	body, err := (&CSVRenderer{}).Render(sampleDocument())
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header + 2 product rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Тип документа,") {
		t.Errorf("Unexpected header row: %q", lines[0])
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, document.TypeIntroduceGoods+",") {
			t.Errorf("Document columns should repeat per row: %q", line)
		}
	}
	if !strings.Contains(lines[1], "6401921000") {
		t.Errorf("First product row missing TNVED code: %q", lines[1])
	}
}

func TestCSVRenderer_NoProducts(t *testing.T) {
	doc := sampleDocument()
	doc.Products = nil

	body, err := (&CSVRenderer{}).Render(doc)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header + 1 padded row, got %d lines", len(lines))
	}
	if got := strings.Count(lines[1], ","); got != len(csvHeader)-1 {
		t.Errorf("Padded row has %d separators, want %d", got, len(csvHeader)-1)
	}
}

func TestCSVRenderer_QuotesSpecialCharacters(t *testing.T) {
	doc := sampleDocument()
	doc.Products = doc.Products[:1]
	doc.Products[0].CertificateDocumentNumber = `CERT,"1"`

	body, err := (&CSVRenderer{}).Render(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `"CERT,""1"""`) {
		t.Errorf("Expected RFC 4180 quoting, got:\n%s", body)
	}
}

func TestXMLRenderer_Envelope(t *testing.T) {
	body, err := (&XMLRenderer{}).Render(sampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	out := string(body)

	if !strings.HasPrefix(out, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>") {
		t.Error("Missing XML declaration")
	}
	if !strings.Contains(out, `<vvod action_id="05" version="5">`) {
		t.Errorf("Missing vvod envelope:\n%s", out)
	}
	for _, tag := range []string{
		"<trade_participant_inn>7700000000</trade_participant_inn>",
		"<producer_inn>7700000000</producer_inn>",
		"<production_order>OWN_PRODUCTION</production_order>",
		"<products_list>",
		"<kit>11111111111111111111111111111111111111</kit>",
		"<kitu>000000000000000000</kitu>",
		"<certificate_type>CONFORMITY_CERTIFICATE</certificate_type>",
	} {
		if !strings.Contains(out, tag) {
			t.Errorf("Missing %q in:\n%s", tag, out)
		}
	}

	// Second product has no KITU; the element must be omitted, not empty.
	if strings.Count(out, "<kitu>") != 1 {
		t.Errorf("Expected exactly one kitu element:\n%s", out)
	}
}

func TestXMLRenderer_ParticipantFallbackAndEscaping(t *testing.T) {
	doc := sampleDocument()
	doc.ParticipantINN = ""
	doc.Description = &document.Description{ParticipantINN: "78<&>00"}
	doc.Products = nil

	body, err := (&XMLRenderer{}).Render(doc)
	if err != nil {
		t.Fatal(err)
	}
	out := string(body)

	if !strings.Contains(out, "<trade_participant_inn>78&lt;&amp;&gt;00</trade_participant_inn>") {
		t.Errorf("Expected escaped fallback INN:\n%s", out)
	}
	if !strings.Contains(out, "<products_list>") {
		t.Errorf("products_list must be present even when empty:\n%s", out)
	}
}
