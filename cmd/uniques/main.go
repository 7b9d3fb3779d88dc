package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "demo":
		if err := demo(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "journal":
		if err := dumpJournal(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("uniques version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`uniques - non-fungible asset registry

Usage:
  uniques <command> [arguments]

Commands:
  demo [journal.db]      Run a scripted registry scenario; optionally journal
                         the emitted events to a SQLite file
  journal <journal.db>   Print the events recorded in a journal file
  version                Print version information
  help                   Show this help message

Examples:
  uniques demo
  uniques demo events.db
  uniques journal events.db`)
}
