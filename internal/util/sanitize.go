package util

import "strings"

// SanitizeCellText removes bytes that spreadsheet XML and Postgres text
// columns reject (NUL and other non-printing controls). OCR output for
// degraded scans occasionally carries them.
func SanitizeCellText(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\x00", "")

	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\t' {
			r = append(r, ch)
			continue
		}
		if ch < 0x20 {
			continue
		}
		r = append(r, ch)
	}
	return strings.TrimSpace(string(r))
}
