package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Envelope wraps every trackup command result. Data is the roster, member
// detail or chat reply; Hints suggest a follow-up command.
type Envelope struct {
	Data  any      `json:"data"`
	Hints []string `json:"_hints,omitempty"`
}

// Formats are the accepted --format values. The first is the default.
var Formats = []string{"json", "edn"}

// Write renders one command result to stdout in the chosen --format.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	}
	return fmt.Errorf("unknown --format %q (want %s)", format, strings.Join(Formats, " or "))
}

// WriteJSON prints v as one JSON document ending in a newline, so results
// pipe straight into jq. Rosters keep the server's team order.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	marshal := json.Marshal
	if pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	b, err := marshal(v)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
