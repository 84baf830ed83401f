package validators

import "strings"

// IsEmailShapeValid is a cheap sanity check on an address: non-empty local
// part, one @, a domain with at least one dot. Deliverability is out of scope.
func IsEmailShapeValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}

	return !strings.ContainsAny(email, " \t")
}
