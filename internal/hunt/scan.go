package hunt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxAmount is the largest figure a report may carry. With at most
// maxParticipants blocks, n*MaxAmount and every sum of figures fit in int64.
const MaxAmount = 1_000_000_000_000

const maxParticipants = math.MaxInt64 / (2 * MaxAmount)

const (
	timestampLayout = "2006-01-02, 15:04:05"
	leaderSuffix    = " (Leader)"
	headerLines     = 6
)

var (
	sessionDataRe = regexp.MustCompile(`^Session data: From (\d{4}-\d{2}-\d{2}, \d{2}:\d{2}:\d{2}) to (\d{4}-\d{2}-\d{2}, \d{2}:\d{2}:\d{2})$`)
	sessionLenRe  = regexp.MustCompile(`^Session: (\d{2}:\d{2})h$`)
	lootTypeRe    = regexp.MustCompile(`^Loot Type: (\w+)$`)
	headerFieldRe = regexp.MustCompile(`^([A-Za-z]+): (\d+|\d{1,3}(?:,\d{3})+)$`)
	blockFieldRe  = regexp.MustCompile(`^[ \t]+([A-Za-z]+): (\d+|\d{1,3}(?:,\d{3})+)$`)
)

var (
	headerFields = []string{"Loot", "Supplies", "Balance"}
	blockFields  = []string{"Loot", "Supplies", "Balance", "Damage", "Healing"}
)

// report is the tokenized form of a hunt session text. Both the validity
// check and the parser work from it, so they cannot disagree.
type report struct {
	startRaw string
	endRaw   string
	length   string
	lootType string
	loot     int64
	supplies int64
	balance  int64
	players  []Participant
}

// Check reports why text is not a well-formed session report, or nil.
// Blank input yields ErrEmptyInput.
func Check(text string) error {
	_, err := scan(text)
	return err
}

// IsValid reports whether text is a well-formed session report.
func IsValid(text string) bool {
	return Check(text) == nil
}

func scan(text string) (*report, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}
	if len(lines) < headerLines {
		return nil, formatErrorf(len(lines)+1, ErrMalformedHeader, "header is incomplete")
	}

	r := &report{}

	m := sessionDataRe.FindStringSubmatch(lines[0])
	if m == nil {
		return nil, formatErrorf(1, ErrMalformedHeader, "expected %q line", "Session data: From ... to ...")
	}
	r.startRaw, r.endRaw = m[1], m[2]
	start, err := time.Parse(timestampLayout, r.startRaw)
	if err != nil {
		return nil, formatErrorf(1, ErrInvalidTimestamp, "start %q: %v", r.startRaw, err)
	}
	end, err := time.Parse(timestampLayout, r.endRaw)
	if err != nil {
		return nil, formatErrorf(1, ErrInvalidTimestamp, "end %q: %v", r.endRaw, err)
	}
	if end.Before(start) {
		return nil, formatErrorf(1, ErrInvalidTimestamp, "session ends before it starts")
	}

	if m = sessionLenRe.FindStringSubmatch(lines[1]); m == nil {
		return nil, formatErrorf(2, ErrMalformedHeader, "expected %q line", "Session: HH:MMh")
	}
	r.length = m[1]

	if m = lootTypeRe.FindStringSubmatch(lines[2]); m == nil {
		return nil, formatErrorf(3, ErrMalformedHeader, "expected %q line", "Loot Type: <word>")
	}
	r.lootType = m[1]

	targets := []*int64{&r.loot, &r.supplies, &r.balance}
	for k, label := range headerFields {
		line := 3 + k
		m = headerFieldRe.FindStringSubmatch(lines[line])
		if m == nil || m[1] != label {
			return nil, formatErrorf(line+1, ErrMalformedHeader, "expected %q line", label+": <amount>")
		}
		v, err := parseAmount(m[2])
		if err != nil {
			return nil, formatErrorf(line+1, ErrMalformedHeader, "%s: %v", label, err)
		}
		*targets[k] = v
	}

	for i := headerLines; i < len(lines); i += 1 + len(blockFields) {
		if len(r.players) == maxParticipants {
			return nil, formatErrorf(i+1, ErrMalformedParticipant, "more than %d participants", maxParticipants)
		}
		p, err := scanParticipant(lines, i)
		if err != nil {
			return nil, err
		}
		r.players = append(r.players, p)
	}

	return r, nil
}

func scanParticipant(lines []string, at int) (Participant, error) {
	nameLine := lines[at]
	if strings.TrimSpace(nameLine) == "" || isIndented(nameLine) {
		return Participant{}, formatErrorf(at+1, ErrMalformedParticipant, "expected participant name")
	}

	var p Participant
	p.Name, p.IsLeader = strings.CutSuffix(nameLine, leaderSuffix)
	targets := []*int64{&p.Loot, &p.Supplies, &p.Balance, &p.Damage, &p.Healing}

	for k, label := range blockFields {
		line := at + 1 + k
		if line >= len(lines) {
			return Participant{}, formatErrorf(line+1, ErrMalformedParticipant, "%s: missing %s line", p.Name, label)
		}
		m := blockFieldRe.FindStringSubmatch(lines[line])
		if m == nil || m[1] != label {
			return Participant{}, formatErrorf(line+1, ErrMalformedParticipant, "%s: expected indented %q line", p.Name, label+": <amount>")
		}
		v, err := parseAmount(m[2])
		if err != nil {
			return Participant{}, formatErrorf(line+1, ErrMalformedParticipant, "%s: %s: %v", p.Name, label, err)
		}
		*targets[k] = v
	}
	return p, nil
}

// splitLines normalizes line endings, strips trailing whitespace from every
// line and drops trailing blank lines. Blank input yields nil.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}

func isIndented(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}

// parseAmount converts a comma-grouped integer such as "1,034,322".
// Figures above MaxAmount are rejected.
func parseAmount(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return 0, err
	}
	if v > MaxAmount {
		return 0, fmt.Errorf("%d exceeds the maximum of %d", v, MaxAmount)
	}
	return v, nil
}
