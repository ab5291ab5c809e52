// Command gt4500 operates the GT4500 torpedo fire control: single fire
// requests, an interactive console, and a Telnet console server.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
