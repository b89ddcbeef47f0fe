package analytics

import (
	"testing"
	"time"
)

func TestReplaceTop(t *testing.T) {
	r := NewRankedSet(10 * time.Minute)
	defer r.Close()

	r.Replace([]ScoredDoc{
		{DocumentID: "doc-b", Score: 10},
		{DocumentID: "doc-a", Score: 70},
		{DocumentID: "doc-c", Score: 25.76},
	})

	got := r.Top(2)
	if len(got) != 2 {
		t.Fatalf("Top(2) retornou %d documentos; expected 2", len(got))
	}
	if got[0].DocumentID != "doc-a" || got[1].DocumentID != "doc-c" {
		t.Errorf("Top(2) = %+v; expected doc-a, doc-c", got)
	}
}

func TestTopSemSnapshot(t *testing.T) {
	r := NewRankedSet(10 * time.Minute)
	defer r.Close()

	if got := r.Top(5); len(got) != 0 {
		t.Errorf("Top sem snapshot retornou %d documentos; expected 0", len(got))
	}
	if got := r.Top(0); len(got) != 0 {
		t.Errorf("Top(0) retornou %d documentos; expected 0", len(got))
	}
}

func TestReplaceSubstituiTudo(t *testing.T) {
	r := NewRankedSet(10 * time.Minute)
	defer r.Close()

	r.Replace([]ScoredDoc{{DocumentID: "doc-velho", Score: 99}})
	r.Replace([]ScoredDoc{{DocumentID: "doc-novo", Score: 1}})

	got := r.Top(10)
	if len(got) != 1 || got[0].DocumentID != "doc-novo" {
		t.Errorf("Top após segunda Replace = %+v; expected apenas doc-novo", got)
	}
}

func TestTopAposExpiracao(t *testing.T) {
	r := NewRankedSet(30 * time.Millisecond)
	defer r.Close()

	r.Replace([]ScoredDoc{{DocumentID: "doc-a", Score: 70}})

	time.Sleep(80 * time.Millisecond)

	// snapshot expirado degrada para "sem dados", não para dados velhos
	if got := r.Top(5); len(got) != 0 {
		t.Errorf("Top após expiração retornou %+v; expected vazio", got)
	}
}

func TestTopNaoExpoeInterno(t *testing.T) {
	r := NewRankedSet(10 * time.Minute)
	defer r.Close()

	r.Replace([]ScoredDoc{{DocumentID: "doc-a", Score: 70}})

	got := r.Top(1)
	got[0].DocumentID = "mutado"

	again := r.Top(1)
	if again[0].DocumentID != "doc-a" {
		t.Errorf("mutação do retorno de Top vazou para o snapshot: %+v", again)
	}
}
