// Package main provides the labrec CLI, a laboratory record keeper for
// carbon rod exfoliation experiments.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if isUserError(err) {
			os.Exit(exitUserError)
		}
		os.Exit(exitSysError)
	}
}
