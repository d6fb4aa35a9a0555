package historical

import (
	"testing"

	"github.com/forgottenhistory/archon-engine/loader/kv"
)

func TestEffectiveStateAppliesDatesUpToStartInOrder(t *testing.T) {
	pairs, err := kv.Parse(`
owner = AAA
1400.1.1 = {
	owner = BBB
}
1444.11.11 = {
	owner = CCC
}
1500.1.1 = {
	owner = DDD
}
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	eff := EffectiveState(pairs, kv.Date{Year: 1444, Month: 11, Day: 11})
	owner, ok := kv.Get(eff, "owner")
	if !ok || owner.Scalar != "CCC" {
		t.Fatalf("got %+v, want owner=CCC (last applied date <= T0)", owner)
	}
}

func TestEffectiveStateIgnoresDatesAfterStart(t *testing.T) {
	pairs, _ := kv.Parse(`
owner = AAA
1600.1.1 = {
	owner = ZZZ
}
`)
	eff := EffectiveState(pairs, kv.Date{Year: 1444, Month: 1, Day: 1})
	owner, _ := kv.Get(eff, "owner")
	if owner.Scalar != "AAA" {
		t.Fatalf("got owner=%q, want AAA (future date ignored)", owner.Scalar)
	}
}

func TestEffectiveStateAccumulatesRepeatableKeys(t *testing.T) {
	pairs, _ := kv.Parse(`
core = TAG1
1400.1.1 = {
	core = TAG2
}
`)
	eff := EffectiveState(pairs, kv.Date{Year: 1444, Month: 1, Day: 1})
	cores := kv.GetAll(eff, "core")
	if len(cores) != 2 {
		t.Fatalf("got %d core entries, want 2 (additive, not overriding)", len(cores))
	}
}
