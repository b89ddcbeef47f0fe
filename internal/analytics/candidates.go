package analytics

import "sync"

// CandidateTracker registra quais documentos tiveram atividade recente,
// com um peso acumulado monotônico. O peso decide apenas quem vale a pena
// repontuar; ele não é o score.
type CandidateTracker struct {
	mu      sync.RWMutex
	weights map[string]int64
}

func NewCandidateTracker() *CandidateTracker {
	return &CandidateTracker{
		weights: make(map[string]int64),
	}
}

// Touch acumula weight no candidato, criando a entrada se necessário.
func (t *CandidateTracker) Touch(docID string, weight int64) {
	if weight <= 0 {
		return
	}
	t.mu.Lock()
	t.weights[docID] += weight
	t.mu.Unlock()
}

// List devolve todos os candidatos rastreados, em ordem indefinida.
func (t *CandidateTracker) List() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, 0, len(t.weights))
	for id := range t.weights {
		out = append(out, id)
	}
	return out
}

// Weight retorna o peso acumulado do candidato (0 se não rastreado).
func (t *CandidateTracker) Weight(docID string) int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.weights[docID]
}

// EvictBelow remove candidatos com peso acumulado <= threshold e retorna
// quantos foram removidos. Rodada em cadência mais lenta que o recompute
// para limitar o tamanho do conjunto sem descartar documentos ativos.
func (t *CandidateTracker) EvictBelow(threshold int64) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for id, w := range t.weights {
		if w <= threshold {
			delete(t.weights, id)
			removed++
		}
	}
	return removed
}

// Len retorna o número de candidatos rastreados.
func (t *CandidateTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.weights)
}
