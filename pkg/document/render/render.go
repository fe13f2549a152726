package render

import (
	"fmt"

	"ismp-hq/crptgate/pkg/document"
)

// Format identifies a document wire format.
type Format string

const (
	// FormatJSON renders the document as the JSON body of the create call.
	FormatJSON Format = "json"
	// FormatCSV renders the document as the CSV upload format.
	FormatCSV Format = "csv"
	// FormatXML renders the document as the XML upload format.
	FormatXML Format = "xml"
)

// ParseFormat converts a user-supplied string to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV, FormatXML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected json, csv, or xml)", s)
	}
}

// Renderer converts a document to one wire format.
type Renderer interface {
	// Render serializes the document.
	Render(doc *document.Document) ([]byte, error)

	// ContentType returns the Content-Type header value for the format.
	ContentType() string
}

// ForFormat returns the renderer for the given format.
func ForFormat(format Format) (Renderer, error) {
	switch format {
	case FormatJSON:
		return &JSONRenderer{}, nil
	case FormatCSV:
		return &CSVRenderer{}, nil
	case FormatXML:
		return &XMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
