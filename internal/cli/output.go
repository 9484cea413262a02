package cli

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Output represents the JSON output format.
type Output struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// writeJSON encodes an Output envelope to w with indentation.
func writeJSON(w io.Writer, out Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode JSON output: %w", err)
	}
	return nil
}

// outputError reports a command failure. In JSON mode the error is
// wrapped in the standard envelope; the error is returned either way so
// the process exits non-zero.
func outputError(w io.Writer, err error) error {
	if IsJSONOutput() {
		_ = writeJSON(w, Output{
			Status: "error",
			Error:  err.Error(),
		})
	}
	return err
}
