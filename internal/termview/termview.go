// Package termview renders a parsed hunt session for a terminal.
package termview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/susu3304/lootsplit/internal/hunt"
	"github.com/susu3304/lootsplit/internal/sharetext"
)

var (
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#6b7785")
	destructive = lipgloss.Color("#e53935")
)

// Styles holds the styles used by Render. The zero value renders plain text.
type Styles struct {
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Label    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Muted    lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Heading:  lipgloss.NewStyle().Bold(true).Underline(true),
		Label:    lipgloss.NewStyle().Foreground(muted),
		Header:   lipgloss.NewStyle().Bold(true),
		Cell:     lipgloss.NewStyle(),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Positive: lipgloss.NewStyle().Foreground(accent),
		Negative: lipgloss.NewStyle().Foreground(destructive),
	}
}

// Render lays out the session figures, the players, the transfers and both
// distributions.
func Render(s *hunt.Summary, st Styles) string {
	var sb strings.Builder

	sb.WriteString(st.Title.Render(fmt.Sprintf("Party hunt session, %d members", s.NumPlayers)))
	sb.WriteString("\n")
	stats := [][2]string{
		{"Date", s.SessionDate},
		{"Duration", s.SessionDuration},
		{"Loot type", s.LootType},
		{"Loot", fmt.Sprint(s.TotalLoot)},
		{"Supplies", fmt.Sprint(s.TotalSupplies)},
		{"Balance", fmt.Sprint(s.TotalBalance)},
		{"Individual balance", fmt.Sprint(s.IndividualBalance)},
		{"Loot per hour", fmt.Sprint(s.LootPerHour)},
	}
	labelWidth := 0
	for _, kv := range stats {
		labelWidth = max(labelWidth, lipgloss.Width(kv[0]))
	}
	for _, kv := range stats {
		sb.WriteString(st.Label.Width(labelWidth + 2).Render(kv[0]))
		sb.WriteString(kv[1])
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(st.Heading.Render("Players"))
	sb.WriteString("\n")
	players := table{headers: []string{"Name", "Loot", "Supplies", "Balance", "Damage", "Healing"}, numeric: 1}
	for _, p := range s.Players {
		name := p.Name
		if p.IsLeader {
			name += " (Leader)"
		}
		players.add(
			name,
			fmt.Sprint(p.Loot),
			fmt.Sprint(p.Supplies),
			signed(st, p.Balance),
			fmt.Sprint(p.Damage),
			fmt.Sprint(p.Healing),
		)
	}
	sb.WriteString(players.render(st))

	sb.WriteString("\n")
	sb.WriteString(st.Heading.Render("Transfers"))
	sb.WriteString("\n")
	if len(s.TransferInstructions) == 0 {
		sb.WriteString(st.Muted.Render("No transfers needed."))
		sb.WriteString("\n")
	} else {
		transfers := table{headers: []string{"From", "To", "Amount", "Command"}, numeric: 2}
		for _, t := range s.TransferInstructions {
			transfers.add(t.From, t.To, fmt.Sprint(t.Amount), sharetext.Command(t))
		}
		sb.WriteString(transfers.render(st))
	}

	sb.WriteString("\n")
	sb.WriteString(st.Heading.Render("Distribution"))
	sb.WriteString("\n")
	dist := table{headers: []string{"Name", "Damage %", "Healing %"}, numeric: 1}
	for i, d := range s.DamageDistribution {
		healing := ""
		if i < len(s.HealingDistribution) {
			healing = fmt.Sprintf("%.2f", s.HealingDistribution[i].Percentage)
		}
		dist.add(d.Name, fmt.Sprintf("%.2f", d.Percentage), healing)
	}
	sb.WriteString(dist.render(st))

	return sb.String()
}

func signed(st Styles, v int64) string {
	switch {
	case v > 0:
		return st.Positive.Render(fmt.Sprintf("+%d", v))
	case v < 0:
		return st.Negative.Render(fmt.Sprint(v))
	}
	return "0"
}

// table is a column-aligned grid. Columns from numeric onwards are right
// aligned.
type table struct {
	headers []string
	rows    [][]string
	numeric int
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(st Styles) string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var sb strings.Builder
	line := func(cells []string, style lipgloss.Style) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				sb.WriteString(st.Muted.Render(" │ "))
			}
			sb.WriteString(style.Render(pad(cell, widths[i], i >= t.numeric)))
		}
		sb.WriteString("\n")
	}

	line(t.headers, st.Header)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	sb.WriteString(st.Muted.Render(strings.Join(sep, "─┼─")))
	sb.WriteString("\n")
	for _, row := range t.rows {
		line(row, st.Cell)
	}
	return sb.String()
}

// pad fills cell to width by display width, which ignores ANSI sequences.
func pad(cell string, width int, right bool) string {
	gap := width - lipgloss.Width(cell)
	if gap <= 0 {
		return cell
	}
	if right {
		return strings.Repeat(" ", gap) + cell
	}
	return cell + strings.Repeat(" ", gap)
}
