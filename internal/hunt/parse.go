package hunt

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/susu3304/lootsplit/internal/settlement"
)

// DefaultDateLayout renders the session start, e.g. "May 31, 2024, 18:09:33".
const DefaultDateLayout = "January 2, 2006, 15:04:05"

var hundred = decimal.NewFromInt(100)

// Options controls how a report is interpreted. The zero value reads
// timestamps as UTC, uses DefaultDateLayout and settles in input order.
type Options struct {
	// Location is the zone the client's timestamps were written in.
	Location *time.Location
	// DateLayout is a time.Format layout for Summary.SessionDate.
	DateLayout string
	// Strict turns a zero damage or healing total into ErrDegenerateDistribution
	// instead of reporting 0% for everyone.
	Strict bool
	Order  settlement.Order
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

func (o Options) dateLayout() string {
	if o.DateLayout == "" {
		return DefaultDateLayout
	}
	return o.DateLayout
}

// Parse turns a session report into a Summary. It fails with the same
// FormatError Check would return for malformed text, with ErrNoParticipants
// when the report lists nobody. Timestamps are read in opts.Location; a
// session that only runs backwards because of a DST gap there has zero length.
func Parse(text string, opts Options) (*Summary, error) {
	r, err := scan(text)
	if err != nil {
		return nil, err
	}

	loc := opts.location()
	start, err := time.ParseInLocation(timestampLayout, r.startRaw, loc)
	if err != nil {
		return nil, fmt.Errorf("start %q: %w", r.startRaw, ErrInvalidTimestamp)
	}
	end, err := time.ParseInLocation(timestampLayout, r.endRaw, loc)
	if err != nil {
		return nil, fmt.Errorf("end %q: %w", r.endRaw, ErrInvalidTimestamp)
	}
	// The wall-clock order was checked by scan. A DST gap in loc can still
	// put end before start; such a session counts as zero length.
	elapsed := max(end.Sub(start), 0)

	n := len(r.players)
	if n == 0 {
		return nil, ErrNoParticipants
	}

	damage, err := distribution(r.players, func(p Participant) int64 { return p.Damage }, opts.Strict)
	if err != nil {
		return nil, fmt.Errorf("damage: %w", err)
	}
	healing, err := distribution(r.players, func(p Participant) int64 { return p.Healing }, opts.Strict)
	if err != nil {
		return nil, fmt.Errorf("healing: %w", err)
	}

	balances := make([]settlement.Balance, n)
	var partyLoot int64
	for i, p := range r.players {
		balances[i] = settlement.Balance{Name: p.Name, Amount: p.Balance}
		partyLoot += p.Loot
	}
	plan := settlement.Settle(balances, r.balance, opts.Order)

	transfers := plan.Transfers
	if transfers == nil {
		transfers = []settlement.Transfer{}
	}

	return &Summary{
		SessionDate:          start.Format(opts.dateLayout()),
		SessionDuration:      FormatDuration(elapsed),
		SessionStart:         start,
		SessionEnd:           end,
		DurationSeconds:      int64(elapsed / time.Second),
		SessionLength:        r.length,
		LootType:             r.lootType,
		TotalLoot:            r.loot,
		TotalSupplies:        r.supplies,
		TotalBalance:         r.balance,
		IndividualBalance:    settlement.Share(r.balance, n).Round(0).IntPart(),
		LootPerHour:          lootPerHour(partyLoot, elapsed),
		NumPlayers:           n,
		DamageDistribution:   damage,
		HealingDistribution:  healing,
		TransferInstructions: transfers,
		Players:              r.players,
	}, nil
}

// lootPerHour extrapolates loot to an hourly rate. A zero-length session has
// no meaningful rate and reports 0.
func lootPerHour(loot int64, elapsed time.Duration) int64 {
	if elapsed <= 0 {
		return 0
	}
	ms := decimal.NewFromInt(elapsed.Milliseconds())
	return decimal.NewFromInt(loot).Mul(decimal.NewFromInt(time.Hour.Milliseconds())).Div(ms).Round(0).IntPart()
}

func distribution(players []Participant, metric func(Participant) int64, strict bool) ([]Distribution, error) {
	var total int64
	for _, p := range players {
		total += metric(p)
	}
	if total == 0 && strict {
		return nil, ErrDegenerateDistribution
	}

	out := make([]Distribution, len(players))
	for i, p := range players {
		out[i] = Distribution{Name: p.Name}
		if total == 0 {
			continue
		}
		out[i].Percentage = decimal.NewFromInt(metric(p)).Mul(hundred).
			Div(decimal.NewFromInt(total)).Round(2).InexactFloat64()
	}
	return out, nil
}

// FormatDuration renders d as HH:MM:SS. Hours are not wrapped at 24.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}
