// Package util holds small helpers shared across the gateway.
package util

import "strings"

// MaskIdentifier redacts a normalized identity for logging. Emails keep the
// first rune of the local part and of the domain; opaque ids keep the first
// and last rune. Identities are user data and must not land in logs whole.
func MaskIdentifier(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if i := strings.IndexByte(s, '@'); i > 0 {
		user, dom := s[:i], s[i+1:]
		if len(user) > 1 {
			user = user[:1] + "…"
		}
		parts := strings.Split(dom, ".")
		if len(parts) > 0 && len(parts[0]) > 1 {
			parts[0] = parts[0][:1] + "…"
		}
		return user + "@" + strings.Join(parts, ".")
	}

	if len(s) <= 3 {
		return "***"
	}
	return s[:1] + "…" + s[len(s)-1:]
}
