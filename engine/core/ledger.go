package core

import "fmt"

// Resources is an amount of each resource the economy tracks
type Resources struct {
	Metal float64 `json:"metal"`
	Stone float64 `json:"stone"`
	Wood  float64 `json:"wood"`
	Gold  float64 `json:"gold"`
	Food  float64 `json:"food"`
}

func (r Resources) String() string {
	return fmt.Sprintf("Metal %.0f | Stone %.0f | Wood %.0f | Gold %.0f | Food %.0f",
		r.Metal, r.Stone, r.Wood, r.Gold, r.Food)
}

// Covers reports whether r holds at least cost of every resource
func (r Resources) Covers(cost Resources) bool {
	return r.Metal >= cost.Metal &&
		r.Stone >= cost.Stone &&
		r.Wood >= cost.Wood &&
		r.Gold >= cost.Gold &&
		r.Food >= cost.Food
}

// Ledger is the local player's stockpile. It is passed to whoever needs it
// instead of being reachable globally.
type Ledger struct {
	Stock Resources
}

func NewLedger(start Resources) *Ledger {
	return &Ledger{Stock: start}
}

// CanAfford returns true if the stockpile covers cost
func (l *Ledger) CanAfford(cost Resources) bool {
	return l.Stock.Covers(cost)
}

// Spend deducts cost if affordable and reports whether it did
func (l *Ledger) Spend(cost Resources) bool {
	if !l.CanAfford(cost) {
		return false
	}
	l.Stock.Metal -= cost.Metal
	l.Stock.Stone -= cost.Stone
	l.Stock.Wood -= cost.Wood
	l.Stock.Gold -= cost.Gold
	l.Stock.Food -= cost.Food
	return true
}

// Gain adds income to the stockpile
func (l *Ledger) Gain(income Resources) {
	l.Stock.Metal += income.Metal
	l.Stock.Stone += income.Stone
	l.Stock.Wood += income.Wood
	l.Stock.Gold += income.Gold
	l.Stock.Food += income.Food
}
