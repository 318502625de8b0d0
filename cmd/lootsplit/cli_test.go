package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/susu3304/lootsplit/internal/config"
	"github.com/susu3304/lootsplit/internal/hunt"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func loadSample(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("../../internal/hunt/testdata/sample.txt")
	require.NoError(t, err)
	return string(b)
}

func setup(t *testing.T) {
	t.Helper()
	cfg = &config.Config{MaxInputBytes: 64 * 1024, ShareLocale: "en"}
	huntOpts = hunt.Options{}
	logger = zap.NewNop()
	fromClipboard = false
	groupDigits = false
	copyShare = false
	outputFormat = "json"
}

func testCommand(stdin string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetContext(context.Background())
	return cmd, &out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadInputs(t *testing.T) {
	sample := loadSample(t)
	path := writeFile(t, "a.txt", sample)

	t.Run("stdin by default", func(t *testing.T) {
		got, err := readInputs(nil, false, strings.NewReader("hello"), 1024)
		require.NoError(t, err)
		assert.Equal(t, []input{{name: "stdin", text: "hello"}}, got)
	})

	t.Run("files and dash", func(t *testing.T) {
		got, err := readInputs([]string{path, "-"}, false, strings.NewReader("x"), 1<<20)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, path, got[0].name)
		assert.Equal(t, sample, got[0].text)
		assert.Equal(t, "stdin", got[1].name)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := readInputs(nil, false, strings.NewReader(strings.Repeat("x", 11)), 10)
		assert.ErrorContains(t, err, "larger than 10 bytes")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readInputs([]string{filepath.Join(t.TempDir(), "nope")}, false, nil, 10)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("clipboard", func(t *testing.T) {
		orig := readClipboard
		defer func() { readClipboard = orig }()
		readClipboard = func() (string, error) { return "pasted", nil }

		got, err := readInputs(nil, true, nil, 1024)
		require.NoError(t, err)
		assert.Equal(t, []input{{name: "clipboard", text: "pasted"}}, got)

		_, err = readInputs([]string{path}, true, nil, 1024)
		assert.Error(t, err)

		readClipboard = func() (string, error) { return "", errors.New("no clipboard utilities available") }
		_, err = readInputs(nil, true, nil, 1024)
		assert.ErrorContains(t, err, "read clipboard")
	})
}

func TestWriteSummaries(t *testing.T) {
	s, err := hunt.Parse(loadSample(t), hunt.Options{})
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSummaries(&buf, "json", []*hunt.Summary{s}))
		var got hunt.Summary
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, s.TransferInstructions, got.TransferInstructions)
	})

	t.Run("yaml list", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSummaries(&buf, "yaml", []*hunt.Summary{s, s}))
		var got []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, 932109, got[1]["individualBalance"])
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSummaries(&buf, "table", []*hunt.Summary{s}))
		assert.Contains(t, buf.String(), "transfer 103721 to Chodzacy zduchami tanno")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, writeSummaries(&bytes.Buffer{}, "csv", []*hunt.Summary{s}))
	})
}

func TestRunParse(t *testing.T) {
	setup(t)
	cmd, out := testCommand(loadSample(t))

	require.NoError(t, runParse(cmd, nil))
	var got hunt.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 5, got.NumPlayers)
	assert.Equal(t, "00:32:50", got.SessionDuration)
}

const headerOnly = `Session data: From 2024-05-31, 18:09:33 to 2024-05-31, 18:42:23
Session: 00:32h
Loot Type: Leader
Loot: 5,411,718
Supplies: 751,174
Balance: 4,660,544
`

func TestParseErrorsCarryUserMessage(t *testing.T) {
	tests := []struct {
		name    string
		run     func(*cobra.Command, []string) error
		stdin   string
		wantMsg string
		wantErr error
	}{
		{name: "parse malformed", run: runParse, stdin: "not a report", wantMsg: hunt.MsgInvalidFormat, wantErr: hunt.ErrMalformedHeader},
		{name: "share malformed", run: runShare, stdin: "not a report", wantMsg: hunt.MsgInvalidFormat, wantErr: hunt.ErrMalformedHeader},
		{name: "share without participants", run: runShare, stdin: headerOnly, wantMsg: hunt.MsgParseFailed, wantErr: hunt.ErrNoParticipants},
		{name: "share empty", run: runShare, stdin: "  \n", wantErr: hunt.ErrEmptyInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)
			cmd, out := testCommand(tt.stdin)
			err := tt.run(cmd, nil)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.True(t, strings.HasPrefix(err.Error(), tt.wantMsg), err.Error())
			} else {
				assert.Equal(t, tt.wantErr.Error(), err.Error())
			}
			assert.Empty(t, out.String())
		})
	}
}

func TestRunValidate(t *testing.T) {
	setup(t)
	good := writeFile(t, "good.txt", loadSample(t))
	bad := writeFile(t, "bad.txt", "Session data: sometime")

	cmd, out := testCommand("")
	require.NoError(t, runValidate(cmd, []string{good}))
	assert.Equal(t, good+": ok\n", out.String())

	cmd, out = testCommand("")
	err := runValidate(cmd, []string{good, bad})
	assert.ErrorIs(t, err, errInvalidReports)
	assert.Contains(t, out.String(), good+": ok")
	assert.Contains(t, out.String(), bad+": "+hunt.MsgInvalidFormat)
}

func TestRunShare(t *testing.T) {
	setup(t)
	var copied string
	orig := writeClipboard
	defer func() { writeClipboard = orig }()
	writeClipboard = func(s string) error { copied = s; return nil }

	groupDigits = true
	copyShare = true
	cmd, out := testCommand(loadSample(t))

	require.NoError(t, runShare(cmd, nil))
	assert.True(t, strings.HasPrefix(out.String(), ">>> ## Party Hunt Session – 5 members"))
	assert.Contains(t, out.String(), "Individual balance: **932,109 gp**")
	assert.Equal(t, strings.TrimSuffix(out.String(), "\n"), copied)
}
