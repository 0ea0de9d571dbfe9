package template

import (
	"go/token"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// words splits a project name on separators and lower-to-upper transitions.
// "order-service_v2" and "orderServiceV2" both yield order/service/v2.
func words(name string) []string {
	var (
		out  []string
		cur  []rune
		prev rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range name {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return out
}

// PackageName derives a lower-case Go identifier from a project name.
func PackageName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	pkg := b.String()
	switch {
	case pkg == "":
		return "app"
	case pkg[0] >= '0' && pkg[0] <= '9':
		return "app" + pkg
	case token.IsKeyword(pkg) || pkg == "main":
		return pkg + "app"
	}
	return pkg
}

// TypeName derives an exported PascalCase identifier from a project name.
func TypeName(name string) string {
	caser := cases.Title(language.English, cases.NoLower)
	var b strings.Builder
	for _, w := range words(name) {
		b.WriteString(caser.String(w))
	}
	if b.Len() == 0 {
		return "App"
	}
	return b.String()
}

// DisplayName derives a human-readable title from a project name.
func DisplayName(name string) string {
	caser := cases.Title(language.English)
	ws := words(name)
	for i, w := range ws {
		ws[i] = caser.String(w)
	}
	return strings.Join(ws, " ")
}

// SnakeCase joins the words of s with underscores in lower case.
func SnakeCase(s string) string {
	ws := words(s)
	for i, w := range ws {
		ws[i] = strings.ToLower(w)
	}
	return strings.Join(ws, "_")
}
