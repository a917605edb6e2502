// Command textbreak wraps text at Unicode line break opportunities.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gogpu/textbreak/internal/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
