package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/prefeitura-rio/app-busca-trends/internal/analytics"
	"github.com/prefeitura-rio/app-busca-trends/internal/config"
)

// fakeResolver substitui o lookup de metadados no Typesense.
type fakeResolver struct {
	createdAt map[string]time.Time
	err       error
}

func (f *fakeResolver) CreatedAt(_ context.Context, documentoID string) (time.Time, error) {
	if f.err != nil {
		return time.Time{}, f.err
	}
	t, ok := f.createdAt[documentoID]
	if !ok {
		return time.Time{}, ErrCreatedAtDesconhecido
	}
	return t, nil
}

func testTrendingConfig() config.TrendingConfig {
	return config.TrendingConfig{
		HLLPrecision:      14,
		CounterRetention:  48 * time.Hour,
		SearchRetention:   24 * time.Hour,
		ShortWindowHours:  2,
		LongWindowHours:   24,
		ShortWindowWeight: 5,
		LongWindowWeight:  2,
		DecayHours:        24,
		RankedTTL:         10 * time.Minute,
		RecomputeInterval: 2 * time.Minute,
		RecomputeTimeout:  30 * time.Second,
		CleanupInterval:   time.Hour,
		EvictThreshold:    2,
		MinUIDLength:      8,
	}
}

type hotScoreFixture struct {
	svc        *HotScoreService
	counters   *analytics.CounterStore
	candidates *analytics.CandidateTracker
	ranked     *analytics.RankedSet
}

func newHotScoreFixture(resolver CreatedAtResolver) *hotScoreFixture {
	counters := analytics.NewCounterStore(14, 48*time.Hour)
	candidates := analytics.NewCandidateTracker()
	ranked := analytics.NewRankedSet(10 * time.Minute)
	return &hotScoreFixture{
		svc:        NewHotScoreService(counters, candidates, ranked, resolver, testTrendingConfig()),
		counters:   counters,
		candidates: candidates,
		ranked:     ranked,
	}
}

func (f *hotScoreFixture) registraVisitantes(docID string, n int, ts time.Time) {
	for i := 0; i < n; i++ {
		f.counters.Record(docID, fmt.Sprintf("%s-uid-%d", docID, i), ts)
	}
	f.candidates.Touch(docID, 1)
}

func TestRecomputeDecaimentoPorIdade(t *testing.T) {
	now := time.Now().UTC()

	// A e B têm os mesmos 10 visitantes únicos nas duas janelas; A acabou
	// de ser publicado, B tem 24h de idade
	resolver := &fakeResolver{createdAt: map[string]time.Time{
		"doc-a": now,
		"doc-b": now.Add(-24 * time.Hour),
	}}
	f := newHotScoreFixture(resolver)
	defer f.ranked.Close()

	f.registraVisitantes("doc-a", 10, now)
	f.registraVisitantes("doc-b", 10, now)

	stats, err := f.svc.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute retornou erro: %v", err)
	}
	if stats.Computed != 2 {
		t.Fatalf("Computed = %d; expected 2", stats.Computed)
	}

	top := f.ranked.Top(2)
	if len(top) != 2 {
		t.Fatalf("Top(2) retornou %d documentos", len(top))
	}

	// score A = (10*5 + 10*2) * e^0 = 70; score B = 70 * e^-1 ≈ 25.76
	if top[0].DocumentID != "doc-a" {
		t.Errorf("primeiro do ranking = %s; expected doc-a", top[0].DocumentID)
	}
	if math.Abs(top[0].Score-70) > 1 {
		t.Errorf("score de doc-a = %.2f; expected ~70", top[0].Score)
	}
	if math.Abs(top[1].Score-70*math.Exp(-1)) > 1 {
		t.Errorf("score de doc-b = %.2f; expected ~%.2f", top[1].Score, 70*math.Exp(-1))
	}
}

func TestRecomputeSemEventosNaoRankeia(t *testing.T) {
	now := time.Now().UTC()
	resolver := &fakeResolver{createdAt: map[string]time.Time{"doc-parado": now}}
	f := newHotScoreFixture(resolver)
	defer f.ranked.Close()

	// candidato rastreado mas sem nenhum visitante registrado
	f.candidates.Touch("doc-parado", 1)

	stats, err := f.svc.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute retornou erro: %v", err)
	}
	if stats.Computed != 0 || stats.Skipped != 1 {
		t.Errorf("stats = %+v; expected 0 computados, 1 pulado", stats)
	}
	if got := f.ranked.Top(10); len(got) != 0 {
		t.Errorf("documento sem eventos apareceu no ranking: %+v", got)
	}
}

func TestRecomputeIdadeDesconhecidaSemDecaimento(t *testing.T) {
	now := time.Now().UTC()
	resolver := &fakeResolver{createdAt: map[string]time.Time{}}
	f := newHotScoreFixture(resolver)
	defer f.ranked.Close()

	f.registraVisitantes("doc-misterio", 10, now)

	stats, err := f.svc.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute retornou erro: %v", err)
	}
	if stats.Computed != 1 {
		t.Fatalf("Computed = %d; expected 1", stats.Computed)
	}

	// sem created_at o score usa os contadores brutos, sem desconto
	top := f.ranked.Top(1)
	if math.Abs(top[0].Score-70) > 1 {
		t.Errorf("score sem created_at = %.2f; expected ~70", top[0].Score)
	}
}

func TestRecomputeFalhaParcialNaoAbortaCiclo(t *testing.T) {
	now := time.Now().UTC()

	// doc-ok resolve; doc-ruim só existe nos contadores e o resolver
	// devolve falha transitória para ele
	resolver := &selectiveFailResolver{
		ok:      map[string]time.Time{"doc-ok": now},
		failing: "doc-ruim",
	}
	f := newHotScoreFixture(resolver)
	defer f.ranked.Close()

	f.registraVisitantes("doc-ok", 5, now)
	f.registraVisitantes("doc-ruim", 5, now)

	stats, err := f.svc.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute retornou erro: %v", err)
	}
	if stats.Computed != 1 || stats.Skipped != 1 {
		t.Errorf("stats = %+v; expected 1 computado, 1 pulado", stats)
	}

	top := f.ranked.Top(10)
	if len(top) != 1 || top[0].DocumentID != "doc-ok" {
		t.Errorf("Top = %+v; expected apenas doc-ok", top)
	}
}

func TestRecomputeFalhaTotalPreservaRankingAnterior(t *testing.T) {
	now := time.Now().UTC()
	resolver := &fakeResolver{createdAt: map[string]time.Time{"doc-a": now}}
	f := newHotScoreFixture(resolver)
	defer f.ranked.Close()

	f.registraVisitantes("doc-a", 10, now)

	if _, err := f.svc.Recompute(context.Background()); err != nil {
		t.Fatalf("primeiro Recompute falhou: %v", err)
	}
	if len(f.ranked.Top(1)) != 1 {
		t.Fatal("primeiro ciclo não publicou ranking")
	}

	// metadados fora do ar: o ciclo aborta e o ranking anterior sobrevive
	resolver.err = errors.New("typesense indisponível")
	_, err := f.svc.Recompute(context.Background())
	if !errors.Is(err, ErrCicloAbortado) {
		t.Fatalf("Recompute com falha total = %v; expected ErrCicloAbortado", err)
	}

	if got := f.ranked.Top(1); len(got) != 1 || got[0].DocumentID != "doc-a" {
		t.Errorf("ranking anterior foi perdido: %+v", got)
	}
}

func TestRecomputeGatilhosConcorrentesColapsam(t *testing.T) {
	resolver := &fakeResolver{createdAt: map[string]time.Time{}}
	f := newHotScoreFixture(resolver)
	defer f.ranked.Close()

	// simula um ciclo em andamento segurando o lock do serviço
	f.svc.mu.Lock()
	defer f.svc.mu.Unlock()

	_, err := f.svc.Recompute(context.Background())
	if !errors.Is(err, ErrRecomputeEmAndamento) {
		t.Errorf("Recompute concorrente = %v; expected ErrRecomputeEmAndamento", err)
	}
}

// selectiveFailResolver falha apenas para um documento específico.
type selectiveFailResolver struct {
	ok      map[string]time.Time
	failing string
}

func (r *selectiveFailResolver) CreatedAt(_ context.Context, documentoID string) (time.Time, error) {
	if documentoID == r.failing {
		return time.Time{}, errors.New("timeout no lookup")
	}
	t, ok := r.ok[documentoID]
	if !ok {
		return time.Time{}, ErrCreatedAtDesconhecido
	}
	return t, nil
}
