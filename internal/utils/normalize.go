package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizarQuery normaliza um termo de busca para agregação: remove
// acentos e diacríticos, converte para minúsculas e apara espaços.
// Exemplo: "  Saúde Bucal " -> "saude bucal"
func NormalizarQuery(query string) string {
	if query == "" {
		return query
	}

	// Remove acentos e diacríticos
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, _ := transform.String(t, query)

	normalized = strings.ToLower(normalized)
	normalized = strings.Join(strings.Fields(normalized), " ")

	return normalized
}
