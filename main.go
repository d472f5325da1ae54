// Command byoww serves and plays "bring your own word" puzzles: a word is
// hidden in a link, and whoever opens the link has to guess it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
