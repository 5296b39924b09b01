// Command cktext inspects and edits cktext translation containers.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpl-au/cktext"
)

// options holds the flags shared by every subcommand.
type options struct {
	verbose bool
	sync    bool
	log     *slog.Logger
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "cktext",
		Short: "Inspect and edit localized-text containers",
		Long: `cktext reads and writes CKT translation containers.

A container holds translation groups consulted in priority order. Every
subcommand takes the container path as its first argument.

Examples:
  cktext set app.ckt "Open" "打开"
  cktext set app.ckt "Open" "开启" --group branding --priority 200
  cktext lookup app.ckt "Open"
  cktext import app.ckt zh.yaml --group zh --compress
  cktext stat app.ckt`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Log debug output to stderr")
	root.PersistentFlags().BoolVar(&opts.sync, "sync", false,
		"fsync containers before replacing them")

	root.AddCommand(
		newDemoCmd(opts),
		newDumpCmd(opts),
		newLookupCmd(opts),
		newSetCmd(opts),
		newImportCmd(opts),
		newStatCmd(opts),
	)
	return root
}

// newDoc returns an empty document configured from opts.
func (o *options) newDoc() *cktext.Document {
	return cktext.New(cktext.Config{SyncWrites: o.sync, Logger: o.log})
}

// open reads the container at path.
func (o *options) open(path string) (*cktext.Document, error) {
	doc := o.newDoc()
	if err := doc.Open(path); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return doc, nil
}

// openOrCreate reads the container at path, or returns an empty document if
// the file does not exist yet.
func (o *options) openOrCreate(path string) (*cktext.Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return o.newDoc(), nil
	}
	return o.open(path)
}
