package apply

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/modgen/pkg/generator"
	"github.com/walteh/modgen/pkg/workspace"
	"gitlab.com/tozd/go/errors"
)

type Handler struct {
	opts       workspace.Options
	configPath *string

	selected int
	label    string
	write    bool
}

func NewApplyCommand(configPath *string) *cobra.Command {
	me := &Handler{configPath: configPath}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "apply one modifier toggle at a cursor position",
	}

	me.opts.AddFlags(cmd)
	cmd.Flags().IntVarP(&me.selected, "select", "s", 0, "menu entry to apply (1 based)")
	cmd.Flags().StringVarP(&me.label, "label", "l", "", "menu entry to apply, by label")
	cmd.Flags().BoolVarP(&me.write, "write", "w", false, "write the result back instead of printing a diff")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), afero.NewOsFs(), cmd.OutOrStdout())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, fs afero.Fs, out io.Writer) error {
	me.opts.Config = *me.configPath

	session, err := workspace.Open(ctx, fs, me.opts)
	if err != nil {
		return err
	}

	items, handled := generator.New(session.Registry).Contextual(ctx, session.Host())
	if !handled {
		return errors.Errorf("no toggles at %s", me.opts.Position)
	}

	item, err := me.pick(items)
	if err != nil {
		return err
	}

	if err := item.Invoke(ctx); err != nil {
		return errors.Errorf("applying %q: %w", item.Label, err)
	}

	zerolog.Ctx(ctx).Info().Str("toggle", item.Label).Bool("changed", session.Changed()).Msg("applied")

	if me.write {
		return session.Save(ctx)
	}

	printDiff(out, session.Diff())

	return nil
}

func (me *Handler) pick(items []generator.Item) (generator.Item, error) {
	if me.label != "" {
		for _, item := range items {
			if strings.EqualFold(item.Label, me.label) {
				return item, nil
			}
		}
		return generator.Item{}, errors.Errorf("no toggle labelled %q", me.label)
	}
	if me.selected < 1 || me.selected > len(items) {
		return generator.Item{}, errors.Errorf("selection %d out of range 1..%d", me.selected, len(items))
	}
	return items[me.selected-1], nil
}

func printDiff(out io.Writer, diff string) {
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(out, del.Sprint(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(out, ins.Sprint(line))
		case line != "":
			fmt.Fprintln(out, line)
		}
	}
}
