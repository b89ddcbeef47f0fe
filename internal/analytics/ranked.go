package analytics

import (
	"sort"
	"time"

	cache "github.com/unkn0wn-root/kioshun"
)

// chave única do snapshot de ranking dentro do cache
const rankedKey = "hot:24h"

// ScoredDoc é um documento pontuado do ranking publicado.
type ScoredDoc struct {
	DocumentID string  `json:"document_id"`
	Score      float64 `json:"score"`
}

// RankedSet publica o ranking de documentos como um snapshot único com
// TTL curto. A troca é atômica (um único Set substitui o snapshot
// inteiro); leitores nunca observam um ranking parcialmente atualizado.
// Expirado o TTL, Top devolve vazio — um recompute travado degrada para
// "sem dados de trending", nunca para ranks antigos servidos para sempre.
type RankedSet struct {
	cache *cache.InMemoryCache[string, []ScoredDoc]
	ttl   time.Duration
}

func NewRankedSet(ttl time.Duration) *RankedSet {
	c := cache.New[string, []ScoredDoc](cache.Config{
		MaxSize:         4,
		ShardCount:      1,
		CleanupInterval: time.Minute,
		DefaultTTL:      ttl,
		EvictionPolicy:  cache.LRU,
	})
	return &RankedSet{cache: c, ttl: ttl}
}

// Replace substitui o ranking inteiro pelo conjunto dado, ordenado por
// score decrescente, e renova o TTL do snapshot.
func (r *RankedSet) Replace(docs []ScoredDoc) {
	sorted := make([]ScoredDoc, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].DocumentID < sorted[j].DocumentID
	})
	_ = r.cache.Set(rankedKey, sorted, r.ttl)
}

// Top devolve os n primeiros documentos do snapshot corrente, ou vazio se
// o snapshot não existe ou expirou (ausência de trending não é erro).
func (r *RankedSet) Top(n int) []ScoredDoc {
	if n <= 0 {
		return []ScoredDoc{}
	}
	docs, ok := r.cache.Get(rankedKey)
	if !ok {
		return []ScoredDoc{}
	}
	if len(docs) > n {
		docs = docs[:n]
	}
	out := make([]ScoredDoc, len(docs))
	copy(out, docs)
	return out
}

// Close libera os recursos do cache subjacente.
func (r *RankedSet) Close() error {
	return r.cache.Close()
}
