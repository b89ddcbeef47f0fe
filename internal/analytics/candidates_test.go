package analytics

import (
	"sort"
	"testing"
)

func TestTouchAcumulaPesos(t *testing.T) {
	tr := NewCandidateTracker()

	tr.Touch("doc-1", 1)
	tr.Touch("doc-1", 2)
	tr.Touch("doc-2", 1)

	if got := tr.Weight("doc-1"); got != 3 {
		t.Errorf("Weight(doc-1) = %d; expected 3", got)
	}
	if got := tr.Weight("doc-2"); got != 1 {
		t.Errorf("Weight(doc-2) = %d; expected 1", got)
	}
	if got := tr.Weight("doc-3"); got != 0 {
		t.Errorf("Weight(doc-3) = %d; expected 0", got)
	}
}

func TestTouchPesoInvalido(t *testing.T) {
	tr := NewCandidateTracker()

	tr.Touch("doc-1", 0)
	tr.Touch("doc-1", -5)

	if tr.Len() != 0 {
		t.Errorf("Len após touches inválidos = %d; expected 0", tr.Len())
	}
}

func TestList(t *testing.T) {
	tr := NewCandidateTracker()
	tr.Touch("doc-b", 1)
	tr.Touch("doc-a", 1)
	tr.Touch("doc-c", 1)

	got := tr.List()
	sort.Strings(got)

	expected := []string{"doc-a", "doc-b", "doc-c"}
	if len(got) != len(expected) {
		t.Fatalf("List retornou %d candidatos; expected %d", len(got), len(expected))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("List[%d] = %q; expected %q", i, got[i], expected[i])
		}
	}
}

func TestEvictBelow(t *testing.T) {
	tr := NewCandidateTracker()

	// três touches de peso 1: acumulado 3
	tr.Touch("doc-1", 1)
	tr.Touch("doc-1", 1)
	tr.Touch("doc-1", 1)

	// peso 3 > threshold 2: não remove
	if removed := tr.EvictBelow(2); removed != 0 {
		t.Errorf("EvictBelow(2) = %d; expected 0", removed)
	}
	if got := tr.Weight("doc-1"); got != 3 {
		t.Errorf("Weight após EvictBelow(2) = %d; expected 3", got)
	}

	// peso 3 <= threshold 5: remove
	if removed := tr.EvictBelow(5); removed != 1 {
		t.Errorf("EvictBelow(5) = %d; expected 1", removed)
	}
	if got := tr.Weight("doc-1"); got != 0 {
		t.Errorf("Weight após EvictBelow(5) = %d; expected 0", got)
	}
}
