package worker

import "strings"

var unsafeChars = strings.NewReplacer(
	" ", "_", "-", "_", ":", "_", "/", "_", `\`, "_",
	"?", "_", "*", "_", `"`, "_", "<", "_", ">", "_", "|", "_",
)

// SafeName lowercases a title and replaces characters that are not allowed
// in file names on common filesystems with underscores.
func SafeName(name string) string {
	return unsafeChars.Replace(strings.ToLower(strings.TrimSpace(name)))
}
