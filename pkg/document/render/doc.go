// Package render converts commissioning documents to the wire formats the
// CRPT API accepts: JSON, CSV, and XML.
//
// Renderers are pure data transformations with no shared state; they sit
// behind the rate limiter's admission call and never perform I/O themselves.
//
//	r, err := render.ForFormat(render.FormatCSV)
//	if err != nil {
//	    return err
//	}
//	body, err := r.Render(doc)
package render
