package model

import (
	"regexp"
	"strings"
)

// ImageExtension is appended to every resolved filename that does not
// already end with it.
const ImageExtension = ".jpg"

// invalidChars matches characters that are rejected by common filesystems,
// plus the plain space.
var invalidChars = regexp.MustCompile(`[\\/:*?"<>| ]`)

// ResolveFileName computes the image filename for a row from a template.
//
// Every placeholder of the form {column} is replaced with the row's value for
// that column. All columns of the row take part, not only the selected ones.
// Placeholders naming a column the row does not have are left as they are.
//
// The substituted name is then trimmed, invalid characters and spaces are
// replaced with underscores, and ".jpg" is appended unless the name already
// ends with it (case-insensitive).
//
// Example:
//
//	row := NewRow(1, []string{"produkt_ean", "zdjecie"}, []string{"5901234123457", "http://x/img.png"})
//	ResolveFileName("{produkt_ean}-1", row) // "5901234123457-1.jpg"
//	ResolveFileName("{nope}-1", row)        // "{nope}-1.jpg"
func ResolveFileName(template string, row *Row) string {
	fileName := template
	for _, key := range row.Keys() {
		fileName = strings.ReplaceAll(fileName, "{"+key+"}", row.Value(key))
	}
	fileName = strings.TrimSpace(fileName)
	fileName = sanitizeFileName(fileName)
	if !strings.HasSuffix(strings.ToLower(fileName), ImageExtension) {
		fileName += ImageExtension
	}
	return fileName
}

// sanitizeFileName replaces \ / : * ? " < > | and spaces with an underscore.
//
//	sanitizeFileName("Foto 1/2") // "Foto_1_2"
func sanitizeFileName(name string) string {
	return invalidChars.ReplaceAllString(name, "_")
}
