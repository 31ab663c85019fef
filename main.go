package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"geolookup/cmd"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and maps its error to an exit status: 0 on success,
// 2 when the vendor reported a failed lookup, 1 otherwise.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := cmd.NewCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	if errors.Is(err, cmd.ErrVendorFailure) {
		return 2
	}
	return 1
}
