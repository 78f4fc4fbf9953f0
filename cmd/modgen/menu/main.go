package menu

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/modgen/pkg/generator"
	"github.com/walteh/modgen/pkg/workspace"
)

type Handler struct {
	opts       workspace.Options
	configPath *string
}

func NewMenuCommand(configPath *string) *cobra.Command {
	me := &Handler{configPath: configPath}

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "list the modifier toggles available at a cursor position",
	}

	me.opts.AddFlags(cmd)

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
		fmt.Fprintln(out, color.New(color.Faint).Sprint("no toggles at this position"))
		return nil
	}

	PrintItems(out, items)

	return nil
}

// PrintItems writes the numbered menu
func PrintItems(out io.Writer, items []generator.Item) {
	num := color.New(color.FgCyan, color.Bold)
	for i, item := range items {
		fmt.Fprintf(out, "%s %s\n", num.Sprintf("%2d)", i+1), item.Label)
	}
}
