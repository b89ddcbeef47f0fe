package analytics

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/prefeitura-rio/app-busca-trends/internal/hll"
)

const counterShardCount = 32 // potência de dois para seleção por máscara

// CounterStore guarda um HyperLogLog por (documento, bucket horário).
// As mutações são serializadas por shard, nunca por um lock global, para
// que a ingestão não bloqueie os loops de background.
type CounterStore struct {
	shards    [counterShardCount]*counterShard
	precision uint8
	retention time.Duration
}

type counterShard struct {
	mu      sync.RWMutex
	buckets map[string]*counterBucket
}

type counterBucket struct {
	sketch    *hll.Sketch
	expiresAt time.Time
}

// NewCounterStore cria o store com a precisão de HLL e retenção dadas.
func NewCounterStore(precision uint8, retention time.Duration) *CounterStore {
	s := &CounterStore{
		precision: precision,
		retention: retention,
	}
	for i := range s.shards {
		s.shards[i] = &counterShard{buckets: make(map[string]*counterBucket)}
	}
	return s
}

func bucketKey(docID, hourKey string) string {
	return docID + ":" + hourKey
}

func (s *CounterStore) shardFor(key string) *counterShard {
	h := fnv.New64a()
	h.Write([]byte(key))
	return s.shards[h.Sum64()&(counterShardCount-1)]
}

// Record adiciona o visitante ao contador do bucket horário do evento.
// O bucket é criado sob demanda com expiração fixa; reenviar o mesmo
// visitante dentro do mesmo bucket não altera a estimativa.
func (s *CounterStore) Record(docID, visitorID string, eventTime time.Time) {
	key := bucketKey(docID, HourKey(eventTime))
	shard := s.shardFor(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	b, ok := shard.buckets[key]
	if !ok {
		b = &counterBucket{
			sketch:    hll.New(s.precision),
			expiresAt: eventTime.Add(s.retention),
		}
		shard.buckets[key] = b
	}
	b.sketch.AddString(visitorID)
}

// EstimateUnique mescla os buckets não expirados do documento dentro da
// janela [now - windowHours, now] e devolve a cardinalidade estimada.
// Buckets ausentes ou expirados contribuem com zero. A mescla acontece em
// um sketch novo; os buckets armazenados não são modificados.
func (s *CounterStore) EstimateUnique(docID string, windowHours int, now time.Time) uint64 {
	merged := hll.New(s.precision)
	found := false

	for _, hk := range WindowKeys(now, windowHours) {
		key := bucketKey(docID, hk)
		shard := s.shardFor(key)

		shard.mu.RLock()
		b, ok := shard.buckets[key]
		if ok && now.Before(b.expiresAt) {
			// Merge lê os registradores do bucket sob o RLock do shard
			_ = merged.Merge(b.sketch)
			found = true
		}
		shard.mu.RUnlock()
	}

	if !found {
		return 0
	}
	return merged.Count()
}

// HasLiveBuckets informa se o documento ainda possui algum bucket não
// expirado dentro da retenção.
func (s *CounterStore) HasLiveBuckets(docID string, now time.Time) bool {
	hours := int(s.retention / time.Hour)
	for _, hk := range WindowKeys(now, hours) {
		key := bucketKey(docID, hk)
		shard := s.shardFor(key)

		shard.mu.RLock()
		b, ok := shard.buckets[key]
		live := ok && now.Before(b.expiresAt)
		shard.mu.RUnlock()

		if live {
			return true
		}
	}
	return false
}

// RemoveExpired descarta buckets cuja expiração já passou e retorna
// quantos foram removidos. A expiração é dura: mesmo antes da varredura,
// buckets expirados já contribuem com zero nas leituras.
func (s *CounterStore) RemoveExpired(now time.Time) int {
	removed := 0
	for _, shard := range s.shards {
		shard.mu.Lock()
		for key, b := range shard.buckets {
			if !now.Before(b.expiresAt) {
				delete(shard.buckets, key)
				removed++
			}
		}
		shard.mu.Unlock()
	}
	return removed
}

// Len retorna o total de buckets armazenados (inclusive expirados ainda
// não varridos).
func (s *CounterStore) Len() int {
	n := 0
	for _, shard := range s.shards {
		shard.mu.RLock()
		n += len(shard.buckets)
		shard.mu.RUnlock()
	}
	return n
}
