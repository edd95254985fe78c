// specview renders go test -json output as a readable spec narrative.
//
// Usage:
//
//	go test -json ./... | specview
//	go test -json ./... | specview --format tui
//
// Output modes (auto-detected):
//
//	live   — incremental narrative with a status footer (default when TTY)
//	plain  — the bare narrative, suitable for piping
//	tui    — scrollable interactive view
package main

import (
	"os"

	"github.com/dkoosis/specview/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
