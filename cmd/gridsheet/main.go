// Command gridsheet is the CLI entry point for the spreadsheet engine: an
// interactive REPL and a live websocket server over the same Sheet type.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jys1670/spreadsheet/server"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "-h", "--help", "help":
		usage()
	case "repl":
		os.Exit(replCommand(os.Args[2:]))
	case "serve":
		os.Exit(serveCommand(os.Args[2:]))
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  gridsheet <command> [arguments]\n")
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  repl             start an interactive REPL\n")
	fmt.Fprintf(os.Stderr, "  serve [addr]     start the live websocket server (default :8080)\n")
	fmt.Fprintf(os.Stderr, "  help             show this help message\n")
}

func replCommand(args []string) int {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			fmt.Fprintf(os.Stderr, "Usage:\n  gridsheet repl\n\nStarts an interactive session. Type :help once inside for commands.\n")
			return 0
		}
	}
	runREPL(os.Stdin, os.Stdout)
	return 0
}

func serveCommand(args []string) int {
	addr := ":8080"
	if len(args) > 0 {
		addr = args[0]
		// Binding to "localhost" can fail under IPv4/IPv6 mismatches; prefer
		// binding to all interfaces.
		addr = strings.Replace(addr, "localhost", "", 1)
		if !strings.Contains(addr, ":") {
			addr = ":" + addr
		}
	}

	srv := server.NewServer()
	if err := srv.Start(addr); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		return 1
	}
	return 0
}
