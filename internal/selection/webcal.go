package selection

import "regexp"

var httpsToken = regexp.MustCompile(`(?i)https`)

// ToWebcal replaces every case-insensitive "https" in url with "webcal".
// Nothing else in the string changes.
func ToWebcal(url string) string {
	return httpsToken.ReplaceAllLiteralString(url, "webcal")
}
