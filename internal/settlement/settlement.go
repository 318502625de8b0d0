// Package settlement computes the transfers that bring every participant of a
// shared activity to the same share of a total balance.
//
// Remainders are tracked in units of 1/n, where n is the number of
// participants: a participant's offset is n*balance - total. This keeps every
// remainder an exact integer, so the sweep can test for "exactly settled"
// without any floating point tolerance.
package settlement

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Order selects how debtors and creditors are queued before the sweep.
type Order int

const (
	// InputOrder keeps the participants' original order within each side.
	InputOrder Order = iota
	// LargestFirst queues the largest debts and surpluses first.
	LargestFirst
)

// ParseOrder maps a configuration value to an Order.
func ParseOrder(s string) (Order, bool) {
	switch s {
	case "", "input":
		return InputOrder, true
	case "largest-first", "largest":
		return LargestFirst, true
	}
	return InputOrder, false
}

func (o Order) String() string {
	if o == LargestFirst {
		return "largest-first"
	}
	return "input"
}

// Balance is a participant's reported balance.
type Balance struct {
	Name   string
	Amount int64
}

// Transfer is one instruction: From pays Amount to To.
type Transfer struct {
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	Amount int64  `json:"amount" yaml:"amount"`
}

// Position is a participant's distance from the equal share, in 1/n units.
type Position struct {
	Name  string
	Units int64
}

// Step records one iteration of the sweep. All figures except Amount are in
// 1/n units. Moved always equals OwedBefore or SurplusBefore (or both).
type Step struct {
	Debtor        string
	Creditor      string
	OwedBefore    int64
	SurplusBefore int64
	Moved         int64
	// Amount is the rounded amount emitted for this step; zero means the
	// step was too small to survive rounding and no transfer was emitted.
	Amount int64
}

// Plan is the outcome of Settle.
type Plan struct {
	Scale     int64
	Debtors   []Position
	Creditors []Position
	Steps     []Step
	Transfers []Transfer
}

// Share returns the exact equal share of total across n participants.
func Share(total int64, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(n)))
}

// Settle matches debtors (below the equal share of total) against creditors
// (above it) with a two-cursor greedy sweep. Each step moves the smaller of
// the two current remainders, so every step settles at least one side and the
// plan holds at most len(Debtors)+len(Creditors)-1 transfers. Participants
// exactly at the share take no part. Steps whose rounded amount is zero do
// not produce a transfer.
//
// len(balances) times any amount, and total, must fit in int64; hunt bounds
// every figure at hunt.MaxAmount so parsed reports always do.
func Settle(balances []Balance, total int64, order Order) Plan {
	n := int64(len(balances))
	plan := Plan{Scale: n}
	if n == 0 {
		return plan
	}

	for _, b := range balances {
		off := n*b.Amount - total
		switch {
		case off < 0:
			plan.Debtors = append(plan.Debtors, Position{Name: b.Name, Units: -off})
		case off > 0:
			plan.Creditors = append(plan.Creditors, Position{Name: b.Name, Units: off})
		}
	}

	if order == LargestFirst {
		sort.SliceStable(plan.Debtors, func(i, j int) bool { return plan.Debtors[i].Units > plan.Debtors[j].Units })
		sort.SliceStable(plan.Creditors, func(i, j int) bool { return plan.Creditors[i].Units > plan.Creditors[j].Units })
	}

	sw := newSweep(plan.Debtors, plan.Creditors)
	for !sw.done() {
		st := sw.step()
		st.Amount = toAmount(st.Moved, n)
		plan.Steps = append(plan.Steps, st)
		if st.Amount > 0 {
			plan.Transfers = append(plan.Transfers, Transfer{From: st.Creditor, To: st.Debtor, Amount: st.Amount})
		}
	}
	return plan
}

// sweep holds the two cursors and the remainders of the participants they
// point at. The input slices are never modified.
type sweep struct {
	debtors   []Position
	creditors []Position
	i, j      int
	owed      int64
	surplus   int64
}

func newSweep(debtors, creditors []Position) *sweep {
	s := &sweep{debtors: debtors, creditors: creditors}
	if len(debtors) > 0 {
		s.owed = debtors[0].Units
	}
	if len(creditors) > 0 {
		s.surplus = creditors[0].Units
	}
	return s
}

func (s *sweep) done() bool {
	return s.i >= len(s.debtors) || s.j >= len(s.creditors)
}

func (s *sweep) step() Step {
	st := Step{
		Debtor:        s.debtors[s.i].Name,
		Creditor:      s.creditors[s.j].Name,
		OwedBefore:    s.owed,
		SurplusBefore: s.surplus,
		Moved:         min(s.owed, s.surplus),
	}
	s.owed -= st.Moved
	s.surplus -= st.Moved

	if s.owed == 0 {
		s.i++
		if s.i < len(s.debtors) {
			s.owed = s.debtors[s.i].Units
		}
	}
	if s.surplus == 0 {
		s.j++
		if s.j < len(s.creditors) {
			s.surplus = s.creditors[s.j].Units
		}
	}
	return st
}

// toAmount converts 1/n units to a whole amount, rounding half away from zero.
func toAmount(units, n int64) int64 {
	return decimal.NewFromInt(units).Div(decimal.NewFromInt(n)).Round(0).IntPart()
}

// Apply returns the balances after every transfer has been carried out.
func Apply(balances []Balance, transfers []Transfer) []Balance {
	out := make([]Balance, len(balances))
	copy(out, balances)
	idx := make(map[string]int, len(out))
	for i, b := range out {
		if _, seen := idx[b.Name]; !seen {
			idx[b.Name] = i
		}
	}
	for _, t := range transfers {
		if i, ok := idx[t.From]; ok {
			out[i].Amount -= t.Amount
		}
		if i, ok := idx[t.To]; ok {
			out[i].Amount += t.Amount
		}
	}
	return out
}
