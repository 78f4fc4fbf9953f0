package languages

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/modgen/pkg/config"
)

func NewLanguagesCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "list configured languages and the files they apply to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), afero.NewOsFs(), *configPath, cmd.OutOrStdout())
		},
	}
}

func Run(ctx context.Context, fs afero.Fs, configPath string, out io.Writer) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(fs, configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	registry, err := cfg.Registry()
	if err != nil {
		return err
	}

	name := color.New(color.Bold)
	for _, lang := range cfg.Languages {
		if lang == nil {
			continue
		}
		caps, ok := registry.Lookup(lang.Name)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "%s  files=%s  visibility=%s",
			name.Sprint(caps.Name),
			strings.Join(lang.Files, ","),
			strings.Join(caps.MemberVisibilities, ","),
		)
		if len(caps.CustomAccess) > 0 {
			fmt.Fprintf(out, "  custom=%s", strings.Join(caps.CustomAccess, ","))
		}
		fmt.Fprintln(out)
	}

	return nil
}
