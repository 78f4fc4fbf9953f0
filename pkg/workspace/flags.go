package workspace

import (
	"github.com/spf13/cobra"
)

// AddFlags registers the flags shared by every command that opens a session
func (o *Options) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.File, "file", "f", "", "source file to edit")
	cmd.Flags().StringVarP(&o.Outline, "outline", "o", "", "YAML outline of the file's classes and members")
	cmd.Flags().StringVarP(&o.Position, "pos", "p", "", "cursor position as line:col (1 based, columns in characters)")
	cmd.Flags().StringVar(&o.Language, "language", "", "language id, overriding outline and file pattern detection")

	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("outline")
	_ = cmd.MarkFlagRequired("pos")
}
