package domain

import "strings"

// Destination is one company from the address book.
// Its identity is its position in the ordered destination list; two
// destinations may share a company name or an address.
type Destination struct {
	Company string
	Address string
}

// NormalizeAddress replaces non-breaking spaces with regular spaces and
// trims the result. Providers reject U+00A0 inside waypoints.
func NormalizeAddress(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
}
