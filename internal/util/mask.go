// Package util agrupa helpers chicos sin dependencias de dominio.
package util

import "strings"

// MaskEmail deja la primera letra del usuario y del primer label del dominio.
// "adm@teste.com" => "a…@t….com". Valores sin "@" conservan primera y última letra.
func MaskEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	at := strings.IndexByte(s, '@')
	if at <= 0 {
		switch {
		case s == "":
			return ""
		case len(s) <= 3:
			return "***"
		}
		return s[:1] + "…" + s[len(s)-1:]
	}

	user, domain := s[:at], s[at+1:]
	if len(user) > 1 {
		user = user[:1] + "…"
	}
	labels := strings.Split(domain, ".")
	if len(labels[0]) > 1 {
		labels[0] = labels[0][:1] + "…"
	}
	return user + "@" + strings.Join(labels, ".")
}
