// Package analytics mantém o estado em memória do motor de trending:
// contadores aproximados de visitantes únicos por (documento, hora),
// o conjunto de candidatos a recompute, os agregados de termos de busca
// e o ranking publicado.
//
// Todo o estado é efêmero e expira dentro das janelas de retenção
// configuradas; nada aqui exige armazenamento durável.
package analytics

import "time"

// hourKeyLayout produz chaves que ordenam lexicamente por tempo
// (ex.: 2026083114 para 31/08/2026 14h UTC).
const hourKeyLayout = "2006010215"

// HourKey deriva a chave do bucket horário de um timestamp, sempre em UTC.
func HourKey(t time.Time) string {
	return t.UTC().Format(hourKeyLayout)
}

// WindowKeys enumera as chaves dos buckets que cobrem as últimas `hours`
// horas a partir de now, incluindo a hora corrente.
func WindowKeys(now time.Time, hours int) []string {
	if hours <= 0 {
		return nil
	}
	keys := make([]string, 0, hours)
	for i := 0; i < hours; i++ {
		keys = append(keys, HourKey(now.Add(-time.Duration(i)*time.Hour)))
	}
	return keys
}
