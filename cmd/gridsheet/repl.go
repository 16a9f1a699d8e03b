package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jys1670/spreadsheet/position"
	"github.com/jys1670/spreadsheet/sheet"
)

const (
	prompt = "gridsheet> "
)

type scannerResult struct {
	line string
	err  error
	ok   bool
}

// runREPL starts an interactive session against a fresh Sheet, reading from
// in and writing to out. It uses raw-mode line editing with history when
// both in and out are terminals, and falls back to line-buffered scanning
// otherwise.
func runREPL(in io.Reader, out io.Writer) {
	s := sheet.New()

	var (
		scanCh chan scannerResult
		tty    *ttyInput
	)
	if ti, ok := newTTYInput(in, out); ok {
		tty = ti
		defer tty.Close()
	} else {
		scanner := bufio.NewScanner(in)
		scanCh = make(chan scannerResult)
		go scanInput(scanner, scanCh)
	}

	sessionOut := out
	if tty != nil {
		sessionOut = newTTYLineWriter(out)
	}

	fmt.Fprintf(sessionOut, "gridsheet - in-memory spreadsheet engine\n")
	fmt.Fprintf(sessionOut, "Set a cell:    A1 1+2          (plain text)\n")
	fmt.Fprintf(sessionOut, "               A3 =A1+A2*3    (formula)\n")
	fmt.Fprintf(sessionOut, "Read a cell:   A3\n")
	fmt.Fprintf(sessionOut, "Commands: :clear <pos>, :values, :texts, :size, :help, :quit\n\n")

	for {
		var (
			line string
			ok   bool
		)
		if tty != nil {
			line, ok = tty.readLine(prompt)
		} else {
			fmt.Fprint(out, prompt)
			line, ok = waitForInput(scanCh, out)
		}
		if !ok {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if handleCommand(line, sessionOut, s) {
				return
			}
			continue
		}
		handleCellInput(line, sessionOut, s)
	}
}

// handleCellInput parses "<pos>" as a read, or "<pos> <text>" as a write.
func handleCellInput(line string, out io.Writer, s *sheet.Sheet) {
	fields := strings.SplitN(line, " ", 2)
	pos := position.FromString(strings.ToUpper(fields[0]))
	if !pos.Valid() {
		fmt.Fprintf(out, "invalid position: %s\n", fields[0])
		return
	}

	if len(fields) == 1 {
		c, err := s.GetCell(pos)
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
			return
		}
		if c == nil || c.IsEmpty() {
			fmt.Fprintf(out, "%s: (empty)\n", fields[0])
			return
		}
		fmt.Fprintf(out, "%s: %s => %s\n", fields[0], c.GetText(), c.GetValue(s).String())
		return
	}

	text := fields[1]
	if err := s.SetCell(pos, text); err != nil {
		fmt.Fprintf(out, "error: %s\n", err)
	}
}

// handleCommand processes a leading-":" command. It returns true when the
// REPL should exit.
func handleCommand(cmd string, out io.Writer, s *sheet.Sheet) bool {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		fmt.Fprintln(out, "bye")
		return true

	case ":help", ":h":
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "  :clear <pos>  - clear a cell")
		fmt.Fprintln(out, "  :values       - print the printable rectangle's values")
		fmt.Fprintln(out, "  :texts        - print the printable rectangle's stored text")
		fmt.Fprintln(out, "  :size         - print the printable rectangle's dimensions")
		fmt.Fprintln(out, "  :clearscreen  - clear the terminal (same as Ctrl+L)")
		fmt.Fprintln(out, "  :help, :h     - show this help")
		fmt.Fprintln(out, "  :quit, :q     - exit")

	case ":clear":
		if len(fields) != 2 {
			fmt.Fprintln(out, "usage: :clear <pos>")
			return false
		}
		pos := position.FromString(strings.ToUpper(fields[1]))
		if !pos.Valid() {
			fmt.Fprintf(out, "invalid position: %s\n", fields[1])
			return false
		}
		if err := s.ClearCell(pos); err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
		}

	case ":values":
		if err := s.PrintValues(out); err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
		}

	case ":texts":
		if err := s.PrintTexts(out); err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
		}

	case ":size":
		size := s.GetPrintableSize()
		fmt.Fprintf(out, "%d rows x %d cols\n", size.Rows, size.Cols)

	case ":clearscreen":
		clearScreen(out)

	default:
		fmt.Fprintf(out, "unknown command: %s (try :help)\n", fields[0])
	}
	return false
}

func scanInput(scanner *bufio.Scanner, out chan<- scannerResult) {
	defer close(out)
	for scanner.Scan() {
		out <- scannerResult{line: scanner.Text(), ok: true}
	}
	if err := scanner.Err(); err != nil {
		out <- scannerResult{err: err}
	}
}

func waitForInput(scanCh <-chan scannerResult, out io.Writer) (string, bool) {
	in, ok := <-scanCh
	if !ok {
		return "", false
	}
	if in.err != nil {
		fmt.Fprintf(out, "input error: %v\n", in.err)
		return "", false
	}
	return in.line, in.ok
}
