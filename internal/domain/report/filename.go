package report

import (
	"strings"
	"unicode"
)

// Export format constants.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// DefaultFileName is used when the admin leaves the file name empty.
const DefaultFileName = "course_users.csv"

// unsafeFileChars are removed from requested file names.
const unsafeFileChars = "?[]/\\=<>:;,'\"&$#*()|~`!{}%+’«»”“"

// SanitizeFileName strips path separators and characters that are unsafe
// in a Content-Disposition file name.
// PRE: raw may be any user input
// POST: Result has no path separators, control characters or unsafe punctuation;
//
//	whitespace and dash runs collapse to one dash; leading/trailing '.', '-', '_' are trimmed
func SanitizeFileName(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	pendingDash := false
	for _, r := range raw {
		switch {
		case unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r':
			continue
		case strings.ContainsRune(unsafeFileChars, r):
			continue
		case unicode.IsSpace(r) || r == '-':
			pendingDash = true
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteRune(r)
	}
	if pendingDash {
		b.WriteByte('-')
	}
	return strings.Trim(b.String(), ".-_")
}

// ExportFileName resolves the attachment name for an export.
// PRE: format is FormatCSV or FormatXLSX (anything else is treated as csv)
// POST: Result is sanitized and ends with the format's extension (case-sensitive check)
func ExportFileName(requested, format string) string {
	ext := "." + FormatCSV
	if format == FormatXLSX {
		ext = "." + FormatXLSX
	}

	name := strings.TrimSpace(requested)
	if name == "" {
		name = strings.TrimSuffix(DefaultFileName, ".csv") + ext
	}
	name = SanitizeFileName(name)
	if name == "" {
		name = strings.TrimSuffix(DefaultFileName, ".csv") + ext
	}
	if !strings.HasSuffix(name, ext) {
		name += ext
	}
	return name
}
