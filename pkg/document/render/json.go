package render

import (
	"encoding/json"

	"ismp-hq/crptgate/pkg/document"
)

// JSONRenderer renders a document as the JSON create-document body.
// Field names follow the CRPT wire format via the document struct tags.
type JSONRenderer struct {
	// Pretty enables indented output. The API accepts both; pretty output
	// is useful for the CLI's dry-run mode.
	Pretty bool
}

// Render implements Renderer.
func (r *JSONRenderer) Render(doc *document.Document) ([]byte, error) {
	if r.Pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// ContentType implements Renderer.
func (r *JSONRenderer) ContentType() string {
	return "application/json"
}
