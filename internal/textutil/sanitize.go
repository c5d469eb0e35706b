package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. Spaces become underscores. Returns "puzzle" when
// nothing usable is left.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSpace(fileNameReplacer.Replace(name))
	name = strings.Join(strings.Fields(name), "_")
	name = strings.Trim(name, ".")
	if name == "" {
		return "puzzle"
	}
	return name
}
