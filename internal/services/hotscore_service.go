package services

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prefeitura-rio/app-busca-trends/internal/analytics"
	"github.com/prefeitura-rio/app-busca-trends/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	// ErrRecomputeEmAndamento indica que outro ciclo já está rodando;
	// gatilhos sobrepostos colapsam em um no-op.
	ErrRecomputeEmAndamento = errors.New("recompute já em andamento")

	// ErrCicloAbortado indica que o ciclo foi abandonado sem publicar,
	// preservando o ranking anterior.
	ErrCicloAbortado = errors.New("ciclo de recompute abortado")
)

// RecomputeStats resume um ciclo de recompute concluído.
type RecomputeStats struct {
	CycleID    string                `json:"cycle_id"`
	Candidates int                   `json:"candidates"`
	Computed   int                   `json:"computed"`
	Skipped    int                   `json:"skipped"`
	Duration   time.Duration         `json:"-"`
	DurationMS int64                 `json:"duration_ms"`
	TopScores  []analytics.ScoredDoc `json:"top_scores"`
}

// HotScoreService recalcula periodicamente o hot score de todos os
// candidatos e publica o ranking como um snapshot atômico com TTL curto.
//
// Score por documento: (u2*pesoCurto + u24*pesoLongo) * exp(-idade/decay),
// onde u2/u24 são visitantes únicos aproximados nas janelas curta e longa
// e a idade vem do resolvedor de metadados. Com os defaults, a influência
// de um documento cai pela metade a cada ~16.6 horas de idade.
type HotScoreService struct {
	counters   *analytics.CounterStore
	candidates *analytics.CandidateTracker
	ranked     *analytics.RankedSet
	metadata   CreatedAtResolver
	cfg        config.TrendingConfig

	mu sync.Mutex // garante um único ciclo por vez
}

func NewHotScoreService(
	counters *analytics.CounterStore,
	candidates *analytics.CandidateTracker,
	ranked *analytics.RankedSet,
	metadata CreatedAtResolver,
	cfg config.TrendingConfig,
) *HotScoreService {
	return &HotScoreService{
		counters:   counters,
		candidates: candidates,
		ranked:     ranked,
		metadata:   metadata,
		cfg:        cfg,
	}
}

// Recompute executa um ciclo completo: estima janelas, aplica decaimento,
// ordena e troca o ranking inteiro de uma vez. Falha em um documento pula
// apenas aquele documento; falha total de metadados aborta o ciclo sem
// tocar no ranking anterior (ranking velho-mas-válido vale mais que
// ranking vazio).
func (s *HotScoreService) Recompute(ctx context.Context) (*RecomputeStats, error) {
	if !s.mu.TryLock() {
		return nil, ErrRecomputeEmAndamento
	}
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RecomputeTimeout)
	defer cancel()

	ctx, span := otel.Tracer("trends").Start(ctx, "trends.recompute")
	defer span.End()

	cycleID := uuid.NewString()
	span.SetAttributes(attribute.String("recompute.cycle_id", cycleID))

	start := time.Now()
	now := start.UTC()

	candidatos := s.candidates.List()
	scored := make([]analytics.ScoredDoc, 0, len(candidatos))
	skipped := 0
	lookupFailures := 0

	for _, docID := range candidatos {
		if ctx.Err() != nil {
			span.SetStatus(codes.Error, "timeout do ciclo")
			log.Printf("[trends] ciclo %s abortado por timeout após %d/%d candidatos", cycleID, len(scored), len(candidatos))
			return nil, ErrCicloAbortado
		}

		score, ok := s.scoreDocumento(ctx, cycleID, docID, now, &lookupFailures)
		if !ok {
			skipped++
			continue
		}
		if score <= 0 {
			// documentos sem atividade nas janelas não entram no ranking
			skipped++
			log.Printf("[trends] ciclo %s: documento %s pulado (score zero)", cycleID, docID)
			continue
		}
		scored = append(scored, analytics.ScoredDoc{DocumentID: docID, Score: score})
	}

	// se nenhum candidato pôde ser pontuado e todas as falhas foram de
	// lookup, o problema é infra: mantém o ranking anterior
	if len(candidatos) > 0 && len(scored) == 0 && lookupFailures == len(candidatos) {
		span.SetStatus(codes.Error, "falha total de metadados")
		log.Printf("[trends] ciclo %s abortado: metadados indisponíveis para todos os %d candidatos", cycleID, len(candidatos))
		return nil, ErrCicloAbortado
	}

	if ctx.Err() != nil {
		span.SetStatus(codes.Error, "timeout do ciclo")
		return nil, ErrCicloAbortado
	}

	s.ranked.Replace(scored)

	stats := &RecomputeStats{
		CycleID:    cycleID,
		Candidates: len(candidatos),
		Computed:   len(scored),
		Skipped:    skipped,
		Duration:   time.Since(start),
	}
	stats.DurationMS = stats.Duration.Milliseconds()
	stats.TopScores = s.ranked.Top(5)

	span.SetAttributes(
		attribute.Int("recompute.candidates", stats.Candidates),
		attribute.Int("recompute.computed", stats.Computed),
		attribute.Int("recompute.skipped", stats.Skipped),
		attribute.Int64("recompute.duration_ms", stats.DurationMS),
	)
	span.SetStatus(codes.Ok, "ciclo concluído")

	log.Printf("[trends] ciclo %s concluído: %d candidatos, %d pontuados, %d pulados em %s",
		cycleID, stats.Candidates, stats.Computed, stats.Skipped, stats.Duration)

	return stats, nil
}

// scoreDocumento calcula o score de um candidato. Retorna ok=false quando
// o documento deve ser pulado (falha de lookup transitória); idade
// desconhecida não pula o documento, apenas não aplica desconto de
// decaimento.
func (s *HotScoreService) scoreDocumento(ctx context.Context, cycleID, docID string, now time.Time, lookupFailures *int) (float64, bool) {
	u2 := s.counters.EstimateUnique(docID, s.cfg.ShortWindowHours, now)
	u24 := s.counters.EstimateUnique(docID, s.cfg.LongWindowHours, now)

	decaimento := 1.0
	createdAt, err := s.metadata.CreatedAt(ctx, docID)
	switch {
	case err == nil:
		ageHours := math.Max(0, now.Sub(createdAt).Hours())
		decaimento = math.Exp(-ageHours / s.cfg.DecayHours)
	case errors.Is(err, ErrCreatedAtDesconhecido):
		// sem created_at não há desconto de decaimento; o documento
		// continua rankeando pelos contadores brutos
		log.Printf("[trends] ciclo %s: created_at desconhecido para %s, sem decaimento", cycleID, docID)
	default:
		*lookupFailures++
		log.Printf("[trends] ciclo %s: documento %s pulado (metadados: %v)", cycleID, docID, err)
		return 0, false
	}

	score := (float64(u2)*s.cfg.ShortWindowWeight + float64(u24)*s.cfg.LongWindowWeight) * decaimento
	return score, true
}

// Run executa o loop periódico de recompute até o contexto ser cancelado.
func (s *HotScoreService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RecomputeInterval)
	defer ticker.Stop()

	log.Printf("[trends] loop de recompute iniciado (intervalo %s)", s.cfg.RecomputeInterval)

	for {
		select {
		case <-ctx.Done():
			log.Println("[trends] loop de recompute encerrado")
			return
		case <-ticker.C:
			if _, err := s.Recompute(ctx); err != nil && !errors.Is(err, ErrRecomputeEmAndamento) {
				log.Printf("[trends] recompute falhou: %v", err)
			}
		}
	}
}
