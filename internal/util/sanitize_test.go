package util

import "testing"

func TestSanitizeCellTextRemovesNulAndControls(t *testing.T) {
	in := "Total\x00 42\x01\x02\n\tUSD"
	out := SanitizeCellText(in)
	if out != "Total 42\n\tUSD" {
		t.Fatalf("unexpected sanitized output: %q", out)
	}
}

func TestSanitizeCellTextKeepsPlainText(t *testing.T) {
	in := "Q3 Revenue ($M)"
	if out := SanitizeCellText(in); out != in {
		t.Fatalf("plain text changed: %q", out)
	}
}
