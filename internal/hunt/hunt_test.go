package hunt

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const header = `Session data: From 2024-05-31, 18:09:33 to 2024-05-31, 18:42:23
Session: 00:32h
Loot Type: Leader
Loot: 5,411,718
Supplies: 751,174
Balance: 4,660,544
`

func loadSample(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/sample.txt")
	require.NoError(t, err)
	return string(b)
}

// block renders one participant block with the given indentation.
func block(name, indent string, loot, supplies, balance, damage, healing string) string {
	var b strings.Builder
	b.WriteString(name + "\n")
	for _, kv := range [][2]string{
		{"Loot", loot}, {"Supplies", supplies}, {"Balance", balance},
		{"Damage", damage}, {"Healing", healing},
	} {
		b.WriteString(indent + kv[0] + ": " + kv[1] + "\n")
	}
	return b.String()
}
