// Package cli implements the interactive bill entry shell.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mmynk/wattbill/internal/controller"
)

// errQuit stops the read loop without reporting an error.
var errQuit = errors.New("quit")

// Command represents a shell command
type Command struct {
	Name        string
	Args        string
	Description string
	// Mutates reports whether the table is re-rendered after a successful run.
	Mutates bool
	Run     func(ctx context.Context, arg string) error
}

// Shell reads commands line by line and drives a controller.
type Shell struct {
	ctrl     *controller.Controller
	in       *bufio.Scanner
	out      io.Writer
	currency string
	commands map[string]*Command
}

// NewShell creates a shell reading from in and writing to out.
// currency is the literal symbol printed in front of amounts.
func NewShell(ctrl *controller.Controller, in io.Reader, out io.Writer, currency string) *Shell {
	s := &Shell{
		ctrl:     ctrl,
		in:       bufio.NewScanner(in),
		out:      out,
		currency: currency,
	}
	s.commands = s.buildCommands()
	return s
}

// Run prints the current bills and then processes commands until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "ELECTRIC BILL MANAGEMENT SYSTEM")
	fmt.Fprintln(s.out, `Type "help" for a list of commands.`)
	if err := s.render(ctx); err != nil {
		s.printError(err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		err := s.Execute(ctx, s.in.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			s.printError(err)
		}
	}
}

// Execute runs a single command line.
func (s *Shell) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	name, arg, _ := strings.Cut(line, " ")
	cmd, ok := s.commands[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}

	if err := cmd.Run(ctx, strings.TrimSpace(arg)); err != nil {
		return err
	}
	if cmd.Mutates {
		return s.render(ctx)
	}
	return nil
}

// usage prints the command list.
func (s *Shell) usage() {
	names := make([]string, 0, len(s.commands))
	for name, cmd := range s.commands {
		if cmd.Name == name {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	fmt.Fprintln(s.out, "Commands:")
	for _, name := range names {
		cmd := s.commands[name]
		fmt.Fprintf(s.out, "  %-18s %s\n", strings.TrimSpace(cmd.Name+" "+cmd.Args), cmd.Description)
	}
}

func (s *Shell) printError(err error) {
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

// confirm asks a yes/no question on the shell's own input. Anything but y/yes is a no.
func (s *Shell) confirm(question string) bool {
	fmt.Fprintf(s.out, "%s [y/N] ", question)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(s.in.Text())) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func parseID(arg string) (int64, error) {
	if arg == "" {
		return 0, errors.New("usage: select <id>")
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid bill id: %q", arg)
	}
	return id, nil
}
