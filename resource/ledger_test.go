package resource

import "testing"

func TestAddAndPruneZero(t *testing.T) {
	l := NewLedger()
	l.Add(1, 500)
	if got := l.Amount(1); got != 500 {
		t.Fatalf("got %d, want 500", got)
	}
	l.Add(1, -500)
	if l.Len() != 0 {
		t.Fatalf("got Len()=%d, want 0 after returning to zero", l.Len())
	}
}

func TestCanAfford(t *testing.T) {
	tt := map[string]struct {
		stock int64
		cost  int64
		want  bool
	}{
		"exact":        {stock: 100, cost: 100, want: true},
		"insufficient": {stock: 99, cost: 100, want: false},
		"surplus":      {stock: 200, cost: 100, want: true},
	}
	for name, tc := range tt {
		t.Run(name, func(t *testing.T) {
			l := NewLedger()
			l.Set(1, tc.stock)
			if got := l.CanAfford(1, tc.cost); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	l := NewLedger()
	l.Set(1, 10)
	clone := l.Clone()
	clone.Set(1, 20)
	if l.Amount(1) != 10 {
		t.Fatalf("mutating the clone affected the original: got %d", l.Amount(1))
	}
}
