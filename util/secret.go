package util

// MaskSecret keeps the first visible characters of s for logs. Short or
// empty secrets are fully masked.
func MaskSecret(s string, visible int) string {
	if s == "" {
		return ""
	}
	if len(s) <= visible*2 {
		return "***"
	}
	return s[:visible] + "***"
}
