package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/susu3304/lootsplit/internal/hunt"
)

// input is one report handed to a command.
type input struct {
	name string
	text string
}

var readClipboard = clipboard.ReadAll

// readInputs reads each path, "-" meaning stdin. No paths reads stdin, or the
// clipboard when fromClipboard is set.
func readInputs(paths []string, fromClipboard bool, stdin io.Reader, maxBytes int64) ([]input, error) {
	if fromClipboard {
		if len(paths) > 0 {
			return nil, errors.New("--clipboard cannot be combined with file arguments")
		}
		text, err := readClipboard()
		if err != nil {
			return nil, fmt.Errorf("read clipboard: %w", err)
		}
		if int64(len(text)) > maxBytes {
			return nil, fmt.Errorf("clipboard: report is larger than %d bytes", maxBytes)
		}
		return []input{{name: "clipboard", text: text}}, nil
	}

	if len(paths) == 0 {
		paths = []string{"-"}
	}
	inputs := make([]input, 0, len(paths))
	for _, p := range paths {
		var r io.Reader = stdin
		name := "stdin"
		if p != "-" {
			f, err := os.Open(p)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r, name = f, p
		}

		b, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if int64(len(b)) > maxBytes {
			return nil, fmt.Errorf("%s: report is larger than %d bytes", name, maxBytes)
		}
		inputs = append(inputs, input{name: name, text: string(b)})
	}
	return inputs, nil
}

func texts(inputs []input) []string {
	out := make([]string, len(inputs))
	for i, in := range inputs {
		out[i] = in.text
	}
	return out
}

// reportError puts the user-facing message in front of a parse failure and
// keeps the detail wrapped for errors.Is.
func reportError(err error) error {
	msg := hunt.UserMessage(err)
	if msg == "" {
		return err
	}
	return fmt.Errorf("%s (%w)", msg, err)
}
