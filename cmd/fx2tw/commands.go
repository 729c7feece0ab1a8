package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"fx2tw/config"
	"fx2tw/directive"
	"fx2tw/state"
	"fx2tw/translate"
)

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputting configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

func outputDirectives(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	scope, err := translate.ParseScope(env.Cfg.Conversion.Scope)
	if err != nil {
		return err
	}
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	return listDirectives(w, translate.NewRegistry(scope))
}

// listDirectives prints supported directives with their responsive forms.
func listDirectives(w io.Writer, reg *translate.Registry) error {
	bps := make([]string, 0, len(directive.Breakpoints()))
	for _, b := range directive.Breakpoints() {
		bps = append(bps, fmt.Sprintf("%s (%s)", b, reg.Scope().Prefix(b)))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Directives (%d translators, %s scope):\n", reg.Len(), reg.Scope())
	for _, n := range directive.Names() {
		fmt.Fprintf(&sb, "    %s\n", n)
	}
	fmt.Fprintf(&sb, "Breakpoints:\n    %s\n", strings.Join(bps, "\n    "))

	_, err := io.WriteString(w, sb.String())
	return err
}
