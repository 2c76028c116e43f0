// main is the entry point for the villagepulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ai-village-agents/villagepulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
