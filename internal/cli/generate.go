package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jpassword/jpassword-go/internal/clipboard"
	"github.com/jpassword/jpassword-go/internal/generator"
	"github.com/jpassword/jpassword-go/internal/notify"
	"github.com/jpassword/jpassword-go/internal/widget"
)

type GenerateOptions struct {
	Length    int
	Lowercase bool
	Uppercase bool
	Numbers   bool
	Symbols   bool
	Count     int
	Copy      bool
	Secure    bool
}

func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Length:    widget.DefaultLength,
		Lowercase: true,
		Count:     1,
	}
}

func AddGenerateFlags(flagset *pflag.FlagSet, opts *GenerateOptions) {
	flagset.IntVarP(&opts.Length, "length", "l", opts.Length,
		fmt.Sprintf("Password length (%d-%d)", widget.MinLength, widget.MaxLength))
	flagset.BoolVar(&opts.Lowercase, "lower", opts.Lowercase, "Include lowercase letters (use --lower=false to exclude)")
	flagset.BoolVarP(&opts.Uppercase, "upper", "u", opts.Uppercase, "Include uppercase letters")
	flagset.BoolVarP(&opts.Numbers, "numbers", "n", opts.Numbers, "Include numbers")
	flagset.BoolVarP(&opts.Symbols, "symbols", "s", opts.Symbols, "Include special symbols (!@#$^&()_)")
	flagset.IntVarP(&opts.Count, "count", "c", opts.Count, "Number of passwords to generate")
	flagset.BoolVar(&opts.Copy, "copy", opts.Copy, "Copy the last password to the clipboard")
	flagset.BoolVar(&opts.Secure, "secure", opts.Secure, "Use crypto/rand instead of the default source")
}

var errNoClasses = errors.New(widget.MsgNoSelection)

func newGenerateCommand(a *app) *cobra.Command {
	opts := DefaultGenerateOptions()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print one or more passwords.",
		Example: `  jpassword generate
  jpassword generate -l 16 -u -n -s
  jpassword generate --lower=false -n -l 10 --count 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.source(opts.Secure)
			if err != nil {
				return err
			}
			return runGenerate(cmd, opts, src, clipboard.NewSystem())
		},
	}

	AddGenerateFlags(cmd.Flags(), &opts)
	return cmd
}

func runGenerate(cmd *cobra.Command, opts GenerateOptions, src generator.Source, clip widget.ClipboardSink) error {
	if opts.Length < widget.MinLength || opts.Length > widget.MaxLength {
		return fmt.Errorf("length must be between %d and %d, got %d", widget.MinLength, widget.MaxLength, opts.Length)
	}
	if opts.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", opts.Count)
	}

	req := generator.Request{
		Length: opts.Length,
		Classes: generator.NewClassSet().
			With(generator.Lowercase, opts.Lowercase).
			With(generator.Uppercase, opts.Uppercase).
			With(generator.Digits, opts.Numbers).
			With(generator.Symbols, opts.Symbols),
	}

	var last string
	for i := 0; i < opts.Count; i++ {
		res := generator.Generate(req, src)
		if !res.OK() {
			return errNoClasses
		}
		last = res.Password
		fmt.Fprintln(cmd.OutOrStdout(), res.Password)
	}

	if opts.Copy {
		n := notify.NewWriter(cmd.ErrOrStderr())
		if err := clip.WriteAll(last); err != nil {
			n.Notify(widget.Notification{Level: widget.LevelWarning, Message: widget.MsgCopyFailed})
			return fmt.Errorf("copying password: %w", err)
		}
		n.Notify(widget.Notification{Level: widget.LevelSuccess, Message: widget.MsgCopied})
	}
	return nil
}
