package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// confirm prompts before a mutation. The global --yes flag skips the prompt.
func confirm(message string) bool {
	if assumeYes {
		return true
	}

	fmt.Fprintf(os.Stderr, "%s [y/N]: ", message)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// requireConfirmation aborts the command when the user declines.
func requireConfirmation(message string) {
	if !confirm(message) {
		fmt.Fprintln(os.Stderr, "Aborted by user.")
		os.Exit(ExitError)
	}
}
