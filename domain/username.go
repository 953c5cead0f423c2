package domain

import (
	"strings"
	"time"
)

// UsernameBase derives the deterministic login token for an admin-created
// student: last word of the full name, then the initial of every preceding
// word, then the birth date as ddMMyy. "Nguyen Phuc Tan" born 2001-05-25
// becomes "tannp250501". Collision suffixes are the caller's problem.
func UsernameBase(fullName string, dateOfBirth time.Time) string {
	words := strings.Fields(strings.TrimSpace(fullName))
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(words[len(words)-1]))
	for _, w := range words[:len(words)-1] {
		r := []rune(w)
		b.WriteString(strings.ToLower(string(r[0])))
	}
	b.WriteString(dateOfBirth.Format("020106"))

	return b.String()
}
