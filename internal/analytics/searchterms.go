package analytics

import (
	"sort"
	"sync"
	"time"
)

// TermCount é um termo de busca agregado com sua contagem na janela.
type TermCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// SearchTermStore agrega contagens de termos de busca normalizados por
// bucket horário, com retenção própria (24h), independente do caminho de
// pontuação de documentos.
type SearchTermStore struct {
	mu        sync.RWMutex
	hours     map[string]*searchHour
	retention time.Duration
}

type searchHour struct {
	counts    map[string]int64
	expiresAt time.Time
}

func NewSearchTermStore(retention time.Duration) *SearchTermStore {
	return &SearchTermStore{
		hours:     make(map[string]*searchHour),
		retention: retention,
	}
}

// Increment soma 1 à contagem do termo (já normalizado) no bucket horário
// do evento.
func (s *SearchTermStore) Increment(query string, eventTime time.Time) {
	hk := HourKey(eventTime)

	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hours[hk]
	if !ok {
		h = &searchHour{
			counts:    make(map[string]int64),
			expiresAt: eventTime.Add(s.retention),
		}
		s.hours[hk] = h
	}
	h.counts[query]++
}

// Trending soma as contagens por termo nos buckets não expirados das
// últimas windowHours horas e devolve os limit termos mais buscados, em
// ordem decrescente. Sem decaimento: popularidade bruta recente.
func (s *SearchTermStore) Trending(windowHours int, now time.Time, limit int) []TermCount {
	totals := make(map[string]int64)

	s.mu.RLock()
	for _, hk := range WindowKeys(now, windowHours) {
		h, ok := s.hours[hk]
		if !ok || !now.Before(h.expiresAt) {
			continue
		}
		for q, c := range h.counts {
			totals[q] += c
		}
	}
	s.mu.RUnlock()

	out := make([]TermCount, 0, len(totals))
	for q, c := range totals {
		out = append(out, TermCount{Query: q, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Query < out[j].Query
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// RemoveExpired descarta buckets horários expirados e retorna quantos
// foram removidos.
func (s *SearchTermStore) RemoveExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for hk, h := range s.hours {
		if !now.Before(h.expiresAt) {
			delete(s.hours, hk)
			removed++
		}
	}
	return removed
}
