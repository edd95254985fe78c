// Package gotestjson binds go test -json streams to the spec tree: it parses
// the NDJSON event stream and materializes spec.RawNode records from package
// and test names.
package gotestjson

import (
	"bytes"
	"encoding/json"
	"time"
)

// TestEvent represents a single event from go test -json output.
type TestEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"` // start, run, pause, cont, pass, bench, fail, output, skip
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

// ProcessFunc handles one parsed event.
type ProcessFunc func(TestEvent)

var validActions = map[string]bool{
	"start": true, "run": true, "pause": true, "cont": true,
	"pass": true, "bench": true, "fail": true, "output": true, "skip": true,
}

// Sniff reports whether data looks like go test -json output: NDJSON whose
// first complete line parses as a TestEvent with a known action.
func Sniff(data []byte) bool {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return false
	}

	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		idx = len(data)
	}

	var event TestEvent
	if err := json.Unmarshal(data[:idx], &event); err != nil {
		return false
	}
	return validActions[event.Action]
}
