// Command intake logs drinks to a local store and reviews the history,
// either from the terminal or through a local HTTP API (intake serve).
//
// Exit codes: 0 = success, 1 = invalid input or configuration,
// 2 = the store is unavailable or an operation on it failed.
package main

import (
	"context"
	"os"

	_ "time/tzdata" // IANA zones for intake.timezone on hosts without zoneinfo

	"github.com/heartmarshall/intakelog/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], cli.IO{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}))
}
