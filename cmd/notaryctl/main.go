// Command notaryctl exercises the notary core locally: submitting a
// single DataItem file through decode/verify/validate, or assembling a
// batch of accepted DataItem files into one bundle.
package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/agentsystems/notary-core/pkg/notary"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "submit":
		cmdSubmit(os.Args[2:])
	case "assemble":
		cmdAssemble(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`notaryctl - ANS-104 DataItem validation and bundling

Usage:
  notaryctl submit <dataitem-file>
      Decode, verify, and validate one DataItem binary file.

  notaryctl assemble <dataitem-file> [<dataitem-file> ...]
      Assemble an ordered set of accepted DataItem files into one
      ANS-104 bundle, written to stdout as base64.

  notaryctl help
      Show this message.`)
}

func cmdSubmit(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: notaryctl submit <dataitem-file>")
		os.Exit(1)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", args[0], err)
		os.Exit(1)
	}

	result, err := notary.Submit(context.Background(), raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rejected: %v\n", err)
		os.Exit(1)
	}

	if result.Accepted {
		fmt.Printf("accepted: %s\n", result.Identifier)
		return
	}
	fmt.Printf("rejected: %s (%s)\n", result.Identifier, result.Reason)
	os.Exit(1)
}

func cmdAssemble(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: notaryctl assemble <dataitem-file> [<dataitem-file> ...]")
		os.Exit(1)
	}

	blobs := make([][]byte, len(args))
	for i, path := range args {
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading %s: %v\n", path, err)
			os.Exit(1)
		}
		blobs[i] = raw
	}

	out, err := notary.AssembleBundle(context.Background(), blobs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "assembly failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(base64.StdEncoding.EncodeToString(out))
}
