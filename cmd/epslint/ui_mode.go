package main

import (
	"os"
)

// shouldUseTUI resolves the ui setting (auto|on|off). Auto shows progress
// only when stderr is a terminal.
func shouldUseTUI(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stderr)
	}
}
