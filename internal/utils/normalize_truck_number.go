package utils

import "strings"

// NormalizeTruckNumber brings a truck number to its canonical form:
// trimmed, inner spaces and dashes removed, upper case.
func NormalizeTruckNumber(raw string) string {
	normalized := strings.TrimSpace(raw)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ToUpper(normalized)
	return normalized
}
