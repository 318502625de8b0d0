// Package sharetext renders a parsed hunt session as a Discord-markdown
// message that a party can paste into its channel.
package sharetext

import (
	"fmt"
	"strings"

	"github.com/susu3304/lootsplit/internal/hunt"
	"github.com/susu3304/lootsplit/internal/settlement"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DiscordMessageLimit is the maximum length of a Discord message.
const DiscordMessageLimit = 2000

type Options struct {
	// GroupDigits prints the aggregate figures with the locale's digit
	// grouping. Transfer commands are always plain, the game rejects "1,000".
	GroupDigits bool
	Locale      language.Tag
	// Footer is an optional italic line under the instructions.
	Footer string
}

// Render builds the share message for s.
func Render(s *hunt.Summary, opts Options) string {
	num := numberFormatter(opts)

	var b strings.Builder
	fmt.Fprintf(&b, ">>> ## Party Hunt Session – %d members\n", s.NumPlayers)
	fmt.Fprintf(&b, "Balance: **%s gp**\n", num(s.TotalBalance))
	fmt.Fprintf(&b, "Individual balance: **%s gp**\n", num(s.IndividualBalance))
	fmt.Fprintf(&b, "Loot per hour: **%s gp/h**\n", num(s.LootPerHour))
	b.WriteString("\n### Splitting Instructions\n")

	groups := GroupBySender(s.TransferInstructions)
	if len(groups) == 0 {
		b.WriteString("No transfers needed.\n")
	}
	for _, g := range groups {
		fmt.Fprintf(&b, "**🠺%s:**\n", g.From)
		for _, t := range g.Transfers {
			fmt.Fprintf(&b, "`%s`\n", Command(t))
		}
	}

	if opts.Footer != "" {
		fmt.Fprintf(&b, "\n*%s*\n", opts.Footer)
	} else {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "-# %sh hunt on %s", hoursMinutes(s.SessionDuration), s.SessionDate)
	return b.String()
}

// Command is the in-game command that carries out t.
func Command(t settlement.Transfer) string {
	return fmt.Sprintf("transfer %d to %s", t.Amount, t.To)
}

// Commands returns one in-game command per transfer, in plan order.
func Commands(s *hunt.Summary) []string {
	out := make([]string, 0, len(s.TransferInstructions))
	for _, t := range s.TransferInstructions {
		out = append(out, Command(t))
	}
	return out
}

// SenderGroup is the set of transfers one participant has to send.
type SenderGroup struct {
	From      string
	Transfers []settlement.Transfer
}

// GroupBySender groups transfers by payer, ordered by each payer's first
// appearance in the plan.
func GroupBySender(transfers []settlement.Transfer) []SenderGroup {
	var groups []SenderGroup
	index := make(map[string]int)
	for _, t := range transfers {
		i, ok := index[t.From]
		if !ok {
			i = len(groups)
			index[t.From] = i
			groups = append(groups, SenderGroup{From: t.From})
		}
		groups[i].Transfers = append(groups[i].Transfers, t)
	}
	return groups
}

// Chunks splits text into pieces of at most limit bytes, breaking at line
// boundaries where possible.
func Chunks(text string, limit int) []string {
	if limit <= 0 || len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			chunks = append(chunks, buf.String())
			buf.Reset()
		}
	}
	for _, line := range strings.Split(text, "\n") {
		for len(line) > limit {
			flush()
			cut := limit
			for cut > 0 && !isRuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if buf.Len() > 0 && buf.Len()+1+len(line) > limit {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(line)
	}
	flush()
	return chunks
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func numberFormatter(opts Options) func(int64) string {
	if !opts.GroupDigits {
		return func(v int64) string { return fmt.Sprintf("%d", v) }
	}
	tag := opts.Locale
	if tag == language.Und {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	return func(v int64) string { return p.Sprintf("%d", v) }
}

// hoursMinutes trims the seconds off an HH:MM:SS duration.
func hoursMinutes(d string) string {
	if i := strings.LastIndexByte(d, ':'); i > 0 {
		return d[:i]
	}
	return d
}
