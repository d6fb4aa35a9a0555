package diplomacy

import (
	"testing"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/fixedpoint"
	"github.com/forgottenhistory/archon-engine/modifier"
)

func TestMakePairKeyIsOrderIndependent(t *testing.T) {
	if MakePairKey(1, 2) != MakePairKey(2, 1) {
		t.Fatal("expected (1,2) and (2,1) to produce the same key")
	}
}

func TestUnpackReturnsLowerThenHigher(t *testing.T) {
	k := MakePairKey(5, 2)
	lo, hi := k.Unpack()
	if lo != 2 || hi != 5 {
		t.Fatalf("got lo=%d hi=%d, want 2,5", lo, hi)
	}
}

func TestBookRelationIsSharedAcrossOrder(t *testing.T) {
	b := NewBook()
	b.Relation(1, 2).BaseOpinion = fixedpoint.FromInt(50)
	if got := b.Relation(2, 1).BaseOpinion; got.Cmp(fixedpoint.FromInt(50)) != 0 {
		t.Fatalf("got %s, want 50 (same relation regardless of argument order)", got)
	}
}

func TestDeclareWarAndMakePeace(t *testing.T) {
	b := NewBook()
	b.DeclareWar(1, 2)
	if !b.AtWar(2, 1) {
		t.Fatal("expected AtWar to be true after DeclareWar, queried in reverse order")
	}
	b.MakePeace(1, 2)
	if b.AtWar(1, 2) {
		t.Fatal("expected AtWar to be false after MakePeace")
	}
}

func TestOpinionIncludesDecayingModifiers(t *testing.T) {
	b := NewBook()
	r := b.Relation(1, 2)
	r.BaseOpinion = fixedpoint.FromInt(10)
	r.Modifiers.Apply(modifier.Modifier[ModifierSource]{
		Source:    1,
		Value:     fixedpoint.FromInt(20),
		AppliedAt: archon.Tick(0),
		DecayTo:   archon.Tick(100),
	})

	if got := r.Opinion(0); got.Cmp(fixedpoint.FromInt(30)) != 0 {
		t.Fatalf("got %s, want 30 at application time", got)
	}
	if got := r.Opinion(100); got.Cmp(fixedpoint.FromInt(10)) != 0 {
		t.Fatalf("got %s, want 10 once the modifier fully decays", got)
	}
}
