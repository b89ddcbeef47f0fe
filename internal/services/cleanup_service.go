package services

import (
	"context"
	"log"
	"time"

	"github.com/prefeitura-rio/app-busca-trends/internal/analytics"
	"github.com/prefeitura-rio/app-busca-trends/internal/config"
)

// CleanupService é a varredura periódica que limita a memória do motor:
// descarta buckets de contadores e de termos de busca já expirados e
// remove candidatos de baixa atividade. Roda em cadência mais lenta que o
// recompute (horária por default).
type CleanupService struct {
	counters   *analytics.CounterStore
	searches   *analytics.SearchTermStore
	candidates *analytics.CandidateTracker
	cfg        config.TrendingConfig
}

func NewCleanupService(
	counters *analytics.CounterStore,
	searches *analytics.SearchTermStore,
	candidates *analytics.CandidateTracker,
	cfg config.TrendingConfig,
) *CleanupService {
	return &CleanupService{
		counters:   counters,
		searches:   searches,
		candidates: candidates,
		cfg:        cfg,
	}
}

// SweepStats resume uma varredura de limpeza.
type SweepStats struct {
	CountersRemoved    int
	SearchHoursRemoved int
	CandidatesEvicted  int
}

// Sweep executa uma varredura única. A varredura apenas deleta; nenhum
// dado primário de outro componente é escrito aqui.
func (s *CleanupService) Sweep(now time.Time) SweepStats {
	stats := SweepStats{
		CountersRemoved:    s.counters.RemoveExpired(now),
		SearchHoursRemoved: s.searches.RemoveExpired(now),
		CandidatesEvicted:  s.candidates.EvictBelow(s.cfg.EvictThreshold),
	}

	log.Printf("[trends] limpeza: %d contadores, %d buckets de busca, %d candidatos removidos",
		stats.CountersRemoved, stats.SearchHoursRemoved, stats.CandidatesEvicted)

	return stats
}

// Run executa a varredura periódica até o contexto ser cancelado.
func (s *CleanupService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	log.Printf("[trends] varredura de limpeza iniciada (intervalo %s)", s.cfg.CleanupInterval)

	for {
		select {
		case <-ctx.Done():
			log.Println("[trends] varredura de limpeza encerrada")
			return
		case <-ticker.C:
			s.Sweep(time.Now().UTC())
		}
	}
}
