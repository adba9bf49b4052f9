package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// readInput returns the bytes named by args: a file path, "-" or nothing for
// stdin. In hex mode whitespace is ignored.
func readInput(args []string, stdin io.Reader, asHex bool) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if !asHex {
		return raw, nil
	}

	clean := bytes.Join(bytes.Fields(raw), nil)
	out := make([]byte, hex.DecodedLen(len(clean)))
	if _, err := hex.Decode(out, clean); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return out, nil
}

func writeOutput(w io.Writer, data []byte, asHex bool) error {
	if asHex {
		_, err := fmt.Fprintln(w, hex.EncodeToString(data))
		return err
	}
	_, err := w.Write(data)
	return err
}
