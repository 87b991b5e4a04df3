package changelog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/RavelOrg/ravel"
)

type priceTicked struct {
	Symbol string
	Price  float64
}

func (priceTicked) Change() {}

func (p priceTicked) Describe() string {
	return p.Symbol
}

type boardState struct {
	Quotes int
}

func (b boardState) Describe() string {
	return fmt.Sprintf("%d quotes", b.Quotes)
}

func entry(seq uint64) ravel.Entry {
	return ravel.Entry{
		ID:     "test-entry",
		Seq:    seq,
		Store:  "board",
		Change: priceTicked{Symbol: "BTCUSDT", Price: 64210.50},
		Before: boardState{Quotes: 2},
		After:  boardState{Quotes: 3},
	}
}

func TestRing_RetainsMostRecent(t *testing.T) {
	ring := NewRing(3)

	for seq := uint64(1); seq <= 5; seq++ {
		ring.Record(entry(seq))
	}

	if ring.Len() != 3 {
		t.Errorf("Expected 3 retained entries, got %d", ring.Len())
	}
	if ring.Total() != 5 {
		t.Errorf("Expected 5 observed entries, got %d", ring.Total())
	}

	entries := ring.Entries()
	for i, e := range entries {
		want := uint64(i + 3)
		if e.Seq != want {
			t.Errorf("Entry %d has seq %d, want %d", i, e.Seq, want)
		}
	}
}

func TestRing_Recent(t *testing.T) {
	ring := NewRing(10)

	for seq := uint64(1); seq <= 4; seq++ {
		ring.Record(entry(seq))
	}

	recent := ring.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(recent))
	}
	if recent[0].Seq != 3 || recent[1].Seq != 4 {
		t.Errorf("Expected seqs [3 4], got [%d %d]", recent[0].Seq, recent[1].Seq)
	}

	if got := ring.Recent(100); len(got) != 4 {
		t.Errorf("Expected oversized count to clamp to 4, got %d", len(got))
	}
}

func TestRing_DefaultCapacity(t *testing.T) {
	ring := NewRing(0)

	for seq := uint64(1); seq <= DefaultRingCapacity+10; seq++ {
		ring.Record(entry(seq))
	}

	if ring.Len() != DefaultRingCapacity {
		t.Errorf("Expected default capacity %d, got %d", DefaultRingCapacity, ring.Len())
	}
}

func TestPrinter_PlainFormat(t *testing.T) {
	var buf strings.Builder
	p := NewPlainPrinter(&buf)

	p.Record(entry(12))

	out := buf.String()
	for _, want := range []string{
		"[board #12]",
		"changelog.priceTicked",
		"├─ change: BTCUSDT",
		"├─ before: 2 quotes",
		"└─ after:  3 quotes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestMulti_FansOut(t *testing.T) {
	a := NewRing(10)
	b := NewRing(10)

	rec := Multi(a, nil, b)
	rec.Record(entry(1))
	rec.Record(entry(2))

	if a.Len() != 2 || b.Len() != 2 {
		t.Errorf("Expected both rings to see 2 entries, got %d and %d", a.Len(), b.Len())
	}
}
