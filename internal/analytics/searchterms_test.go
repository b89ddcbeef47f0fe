package analytics

import (
	"testing"
	"time"
)

func TestTrendingOrdenado(t *testing.T) {
	s := NewSearchTermStore(24 * time.Hour)

	for i := 0; i < 5; i++ {
		s.Increment("iptu", baseTime)
	}
	for i := 0; i < 3; i++ {
		s.Increment("multa", baseTime.Add(-time.Hour))
	}
	s.Increment("alvara", baseTime)

	got := s.Trending(24, baseTime, 20)
	if len(got) != 3 {
		t.Fatalf("Trending retornou %d termos; expected 3", len(got))
	}

	expected := []TermCount{
		{Query: "iptu", Count: 5},
		{Query: "multa", Count: 3},
		{Query: "alvara", Count: 1},
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Trending[%d] = %+v; expected %+v", i, got[i], expected[i])
		}
	}
}

func TestTrendingSomaEntreHoras(t *testing.T) {
	s := NewSearchTermStore(24 * time.Hour)

	s.Increment("iptu", baseTime)
	s.Increment("iptu", baseTime.Add(-time.Hour))
	s.Increment("iptu", baseTime.Add(-2*time.Hour))

	got := s.Trending(24, baseTime, 20)
	if len(got) != 1 || got[0].Count != 3 {
		t.Errorf("Trending = %+v; expected iptu com contagem 3", got)
	}

	// janela de 1h cobre só o bucket corrente
	got = s.Trending(1, baseTime, 20)
	if len(got) != 1 || got[0].Count != 1 {
		t.Errorf("Trending janela 1h = %+v; expected iptu com contagem 1", got)
	}
}

func TestTrendingLimit(t *testing.T) {
	s := NewSearchTermStore(24 * time.Hour)

	s.Increment("a", baseTime)
	s.Increment("b", baseTime)
	s.Increment("c", baseTime)

	if got := s.Trending(24, baseTime, 2); len(got) != 2 {
		t.Errorf("Trending com limit 2 retornou %d termos", len(got))
	}
}

func TestTrendingExpiracaoDura(t *testing.T) {
	s := NewSearchTermStore(24 * time.Hour)

	s.Increment("iptu", baseTime)

	// dentro da retenção
	if got := s.Trending(24, baseTime.Add(time.Hour), 20); len(got) != 1 {
		t.Errorf("Trending antes da expiração retornou %d termos; expected 1", len(got))
	}

	// bucket expirado não conta, mesmo antes da varredura
	future := baseTime.Add(25 * time.Hour)
	if got := s.Trending(48, future, 20); len(got) != 0 {
		t.Errorf("Trending após expiração retornou %d termos; expected 0", len(got))
	}
}

func TestSearchRemoveExpired(t *testing.T) {
	s := NewSearchTermStore(24 * time.Hour)

	s.Increment("velho", baseTime.Add(-25*time.Hour))
	s.Increment("novo", baseTime)

	if removed := s.RemoveExpired(baseTime); removed != 1 {
		t.Errorf("RemoveExpired = %d; expected 1", removed)
	}
}
