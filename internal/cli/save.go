package cli

import (
	"fmt"
	"io"

	"github.com/mvp-joe/scribe/internal/document"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save SRC DEST",
		Short: "Save a copy of a file as UTF-8",
		Long: `Read SRC with encoding detection and write its text to DEST as UTF-8.

Latin-1 files are converted; bytes that are not valid UTF-8 in a UTF-8 file
are written as U+FFFD. DEST is not overwritten unless --force is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return executeSave(afero.NewOsFs(), args[0], args[1], force, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolP("force", "f", false, "overwrite DEST if it exists")
	return cmd
}

func init() {
	rootCmd.AddCommand(newSaveCmd())
}

func executeSave(fsys afero.Fs, src, dest string, force bool, out io.Writer) error {
	if !force && document.Exists(fsys, dest) {
		return fmt.Errorf("destination exists: %s (use --force to overwrite)", dest)
	}

	doc, err := document.Open(fsys, src)
	if err != nil {
		return err
	}
	from := doc.Encoding()

	if err := doc.SaveAs(dest); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Saved %s as %s (from %s)\n", dest, doc.Encoding(), from)
	return nil
}
