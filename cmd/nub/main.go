// Command nub compresses large textual artifacts into a bounded,
// shape-sized summary for feeding LLM agents.
package main

import (
	"os"

	"github.com/hcristescu/nub/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
