package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpassword/jpassword-go/internal/clipboard"
	"github.com/jpassword/jpassword-go/internal/generator"
	"github.com/jpassword/jpassword-go/internal/notify"
	"github.com/jpassword/jpassword-go/internal/widget"
)

const interactiveHelp = `Commands:
  length <8-30>          set the password length
  toggle <class> [on|off] flip a class (lowercase, uppercase, symbols, numbers)
  generate | g           generate a password
  copy | c               copy the password to the clipboard
  show                   print the current form
  help                   print this help
  quit | q               exit`

var (
	errQuit       = errors.New("quit")
	errUnknownCmd = errors.New("unknown command")
)

func newInteractiveCommand(a *app) *cobra.Command {
	var secure bool

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Run the generator form in the terminal.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.source(secure)
			if err != nil {
				return err
			}

			var clip widget.ClipboardSink = &clipboard.Memory{}
			if sys := clipboard.NewSystem(); sys.Available() {
				clip = sys
			} else {
				a.logger.Warn("system clipboard unavailable, copies stay in memory")
			}

			reducer := widget.Reducer{Source: src, CopiedReset: a.cfg.CopiedReset}
			return runInteractive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), reducer, clip, a.logger)
		},
	}

	cmd.Flags().BoolVar(&secure, "secure", false, "Use crypto/rand instead of the default source")
	return cmd
}

func runInteractive(ctx context.Context, in io.Reader, out io.Writer, reducer widget.Reducer, clip widget.ClipboardSink, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	notifier := notify.Multi{notify.NewWriter(out), notify.NewLogger(logger)}
	d := widget.NewDispatcher(reducer, clip, notifier, widget.WithLogger(logger))

	errc := make(chan error, 1)
	go func() { errc <- d.Run(ctx) }()

	fmt.Fprintln(out, "=== JPassword Generator ===")
	fmt.Fprintln(out, interactiveHelp)
	fmt.Fprint(out, render(d.State()))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, err := parseCommand(line)
		switch {
		case errors.Is(err, errQuit):
			return stop(cancel, errc)
		case errors.Is(err, errShow):
			fmt.Fprint(out, render(d.State()))
			continue
		case errors.Is(err, errHelp):
			fmt.Fprintln(out, interactiveHelp)
			continue
		case err != nil:
			fmt.Fprintf(out, "%v (type help)\n", err)
			continue
		}

		ev := cmd.ev
		if t, ok := ev.(widget.ToggleClass); ok && cmd.flip {
			t.On = !d.State().Classes.Has(t.Class)
			ev = t
		}

		s, err := d.Do(ctx, ev)
		if err != nil {
			return err
		}
		fmt.Fprint(out, render(s))
	}

	if err := scanner.Err(); err != nil {
		cancel()
		<-errc
		return fmt.Errorf("reading input: %w", err)
	}
	return stop(cancel, errc)
}

func stop(cancel context.CancelFunc, errc <-chan error) error {
	cancel()
	if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

var (
	errShow = errors.New("show")
	errHelp = errors.New("help")
)

// command is a parsed input line. flip marks a toggle without an explicit
// on/off, resolved against the current state.
type command struct {
	ev   widget.Event
	flip bool
}

// parseCommand turns one input line into a widget event.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "quit", "q", "exit":
		return command{}, errQuit
	case "show":
		return command{}, errShow
	case "help", "h", "?":
		return command{}, errHelp
	case "generate", "g":
		return command{ev: widget.Generate{}}, nil
	case "copy", "c":
		return command{ev: widget.Copy{}}, nil
	case "length", "len":
		if len(fields) != 2 {
			return command{}, fmt.Errorf("usage: length <%d-%d>", widget.MinLength, widget.MaxLength)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return command{}, fmt.Errorf("invalid length %q", fields[1])
		}
		return command{ev: widget.SetLength{N: n}}, nil
	case "toggle", "t":
		if len(fields) < 2 || len(fields) > 3 {
			return command{}, errors.New("usage: toggle <class> [on|off]")
		}
		c, err := generator.ParseClass(fields[1])
		if err != nil {
			return command{}, err
		}
		if len(fields) == 2 {
			return command{ev: widget.ToggleClass{Class: c}, flip: true}, nil
		}
		switch strings.ToLower(fields[2]) {
		case "on", "yes", "y", "true":
			return command{ev: widget.ToggleClass{Class: c, On: true}}, nil
		case "off", "no", "n", "false":
			return command{ev: widget.ToggleClass{Class: c, On: false}}, nil
		}
		return command{}, fmt.Errorf("invalid toggle value %q", fields[2])
	}
	return command{}, fmt.Errorf("%w: %s", errUnknownCmd, fields[0])
}

// render formats the form the way the widget lays it out.
func render(s widget.State) string {
	var sb strings.Builder
	if s.HasPassword() {
		mark := "[copy]"
		if s.Copied {
			mark = "[copied]"
		}
		fmt.Fprintf(&sb, "  %s %s\n", s.Password, mark)
	}
	fmt.Fprintf(&sb, "  Password length - {%d}\n", s.Length)
	for _, c := range generator.AllClasses {
		box := "[ ]"
		if s.Classes.Has(c) {
			box = "[x]"
		}
		fmt.Fprintf(&sb, "  %s %s\n", box, c.Label())
	}
	return sb.String()
}
