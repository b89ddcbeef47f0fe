package services

import (
	"testing"
	"time"

	"github.com/prefeitura-rio/app-busca-trends/internal/analytics"
)

func TestSweep(t *testing.T) {
	counters := analytics.NewCounterStore(14, 48*time.Hour)
	searches := analytics.NewSearchTermStore(24 * time.Hour)
	candidates := analytics.NewCandidateTracker()
	svc := NewCleanupService(counters, searches, candidates, testTrendingConfig())

	now := time.Now().UTC()

	// contador e busca antigos já passaram da retenção; os recentes não
	counters.Record("doc-velho", "visitante-001", now.Add(-50*time.Hour))
	counters.Record("doc-novo", "visitante-001", now)
	searches.Increment("consulta velha", now.Add(-26*time.Hour))
	searches.Increment("consulta nova", now)

	// peso 1 <= threshold 2: removido; peso 5 sobrevive
	candidates.Touch("doc-frio", 1)
	candidates.Touch("doc-quente", 5)

	stats := svc.Sweep(now)

	if stats.CountersRemoved != 1 {
		t.Errorf("CountersRemoved = %d; expected 1", stats.CountersRemoved)
	}
	if stats.SearchHoursRemoved != 1 {
		t.Errorf("SearchHoursRemoved = %d; expected 1", stats.SearchHoursRemoved)
	}
	if stats.CandidatesEvicted != 1 {
		t.Errorf("CandidatesEvicted = %d; expected 1", stats.CandidatesEvicted)
	}

	if !counters.HasLiveBuckets("doc-novo", now) {
		t.Error("contador recente foi removido pela varredura")
	}
	if counters.HasLiveBuckets("doc-velho", now) {
		t.Error("contador expirado sobreviveu à varredura")
	}
	if candidates.Weight("doc-quente") != 5 {
		t.Error("candidato acima do threshold foi removido")
	}
	if candidates.Weight("doc-frio") != 0 {
		t.Error("candidato de baixa atividade sobreviveu à varredura")
	}
}

func TestSweepVazia(t *testing.T) {
	counters := analytics.NewCounterStore(14, 48*time.Hour)
	searches := analytics.NewSearchTermStore(24 * time.Hour)
	candidates := analytics.NewCandidateTracker()
	svc := NewCleanupService(counters, searches, candidates, testTrendingConfig())

	stats := svc.Sweep(time.Now().UTC())
	if stats != (SweepStats{}) {
		t.Errorf("Sweep em stores vazios = %+v; expected zeros", stats)
	}
}
