package models

import "strings"

// CustomerKey clusters reservations that appear to belong to the same
// person. The booking form collects no account, so name and phone are the
// only identity we have. Kept as a struct rather than a concatenated
// string so that "Jo-Ann"+"Smith" and "Jo"+"Ann-Smith" cannot collide.
type CustomerKey struct {
	FirstName string
	LastName  string
	Phone     string
}

func NewCustomerKey(firstName, lastName, phone string) CustomerKey {
	return CustomerKey{
		FirstName: normalizeName(firstName),
		LastName:  normalizeName(lastName),
		Phone:     normalizePhone(phone),
	}
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizePhone strips formatting characters so "06 12 34 56 78" and
// "0612345678" group together.
func normalizePhone(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch r {
		case ' ', '-', '(', ')', '.':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
