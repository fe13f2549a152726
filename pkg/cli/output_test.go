package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON)

	if err := f.FormatTo(&buf, map[string]int{"pending": 3}); err != nil {
		t.Fatal(err)
	}

	var out map[string]int
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Output is not JSON: %v", err)
	}
	if out["pending"] != 3 {
		t.Errorf("Unexpected output: %v", out)
	}
}

func TestTextFormatterIsDefault(t *testing.T) {
	if _, ok := NewFormatter("junit").(*TextFormatter); !ok {
		t.Error("Unknown formats should fall back to text")
	}
}
