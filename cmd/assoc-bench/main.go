// Command assoc-bench measures random point-updates on mutable and
// persistent vectors.
package main

import (
	"fmt"
	"os"

	"github.com/eunmann/assoc-bench/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
