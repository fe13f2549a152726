// Package document defines the commissioning document model for the CRPT
// ("Chestny Znak") goods-marking API.
//
// The field set mirrors the LP_INTRODUCE_GOODS document accepted by the
// /lk/documents/create endpoint: participant, producer and owner INNs,
// production metadata, and the list of marked products with their
// identification codes and certificates.
//
// Documents are plain data. Rendering to the wire formats (JSON, CSV, XML)
// lives in the render subpackage; submission lives in pkg/client.
package document
