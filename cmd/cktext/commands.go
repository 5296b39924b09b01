package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/cktext"
)

func newDemoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo PATH",
		Short: "Write a sample container and read it back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc := opts.newDoc()

			props := doc.Properties()
			props.Set("hello", cktext.String("你好"))
			props.Set("hello", cktext.String("再见"))
			// Both are rejected and logged; the table keeps one entry.
			props.Set("", cktext.String("empty name"))
			props.Set(strings.Repeat("x", 90), cktext.String("long name"))

			if err := doc.Default().Set("hello world", "你好世界"); err != nil {
				return err
			}
			if err := doc.Save(path, true); err != nil {
				return err
			}

			loaded, err := opts.open(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for src, trs := range loaded.Default().All() {
				fmt.Fprintf(out, "%s -> %s\n", src, trs)
			}
			fmt.Fprintf(out, "hello = %s\n", cktext.Format(loaded.Properties().Get("hello")))
			return nil
		},
	}
}

func newDumpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump PATH",
		Short: "Print a container as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.open(args[0])
			if err != nil {
				return err
			}
			return doc.Export(cmd.OutOrStdout())
		},
	}
}

func newLookupCmd(opts *options) *cobra.Command {
	var def string
	cmd := &cobra.Command{
		Use:   "lookup PATH SRC",
		Short: "Resolve a source string through the group priority order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.open(args[0])
			if err != nil {
				return err
			}
			text, ok := doc.Lookup(args[1], def)
			if !ok {
				return fmt.Errorf("%q: no translation", args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&def, "default", "d", "",
		"Text to print when the source is known but untranslated")
	return cmd
}

func newSetCmd(opts *options) *cobra.Command {
	var (
		group    string
		priority int32
		compress bool
	)
	cmd := &cobra.Command{
		Use:   "set PATH SRC TRS",
		Short: "Add or replace a translation and save",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.openOrCreate(args[0])
			if err != nil {
				return err
			}
			g, err := target(doc, group)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("priority") {
				if err := doc.Reprioritize(g.Name(), priority); err != nil {
					return err
				}
			}
			if err := g.Set(args[1], args[2]); err != nil {
				return err
			}
			return doc.Save(args[0], compress)
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "",
		"Group to write into (default group if empty)")
	cmd.Flags().Int32VarP(&priority, "priority", "p", cktext.DefaultPriority,
		"Set the group priority")
	cmd.Flags().BoolVarP(&compress, "compress", "z", false,
		"Save the container compressed")
	return cmd
}

func newImportCmd(opts *options) *cobra.Command {
	var (
		group    string
		compress bool
	)
	cmd := &cobra.Command{
		Use:   "import PATH CATALOG",
		Short: "Merge a JSON or YAML catalog into a group and save",
		Long: `Merge a JSON or YAML catalog into a group and save.

Nested objects become dotted source strings, so {"menu": {"open": "打开"}}
imports the source "menu.open". A null value marks a source as known but
untranslated.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			doc, err := opts.openOrCreate(args[0])
			if err != nil {
				return err
			}
			g, err := target(doc, group)
			if err != nil {
				return err
			}

			var n int
			switch ext := strings.ToLower(filepath.Ext(args[1])); ext {
			case ".json":
				n, err = g.ImportJSON(data)
			case ".yaml", ".yml":
				n, err = g.ImportYAML(data)
			default:
				return fmt.Errorf("unsupported catalog type %q", ext)
			}
			if err != nil {
				return err
			}
			if err := doc.Save(args[0], compress); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d translations into %s\n", n, display(g.Name()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "",
		"Group to import into (default group if empty)")
	cmd.Flags().BoolVarP(&compress, "compress", "z", false,
		"Save the container compressed")
	return cmd
}

func newStatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stat PATH",
		Short: "Summarise a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.open(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "groups: %d\n", doc.Len())
			for name, v := range doc.Properties().All() {
				fmt.Fprintf(out, "  %s = %s\n", name, cktext.Format(v))
			}
			for _, g := range doc.Sorted() {
				fmt.Fprintf(out, "%s priority=%d items=%d\n", display(g.Name()), g.Priority(), g.Len())
				for name, v := range g.Properties().All() {
					fmt.Fprintf(out, "  %s = %s\n", name, cktext.Format(v))
				}
			}

			fp, err := doc.Fingerprint()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "fingerprint: %s\n", fp)
			return nil
		},
	}
}

// target returns the named group, creating it if needed. The empty name
// selects the default group.
func target(doc *cktext.Document, name string) (*cktext.Group, error) {
	if g := doc.Group(name); g != nil {
		return g, nil
	}
	g, err := doc.Insert(name, nil)
	if errors.Is(err, cktext.ErrInvalidName) {
		return nil, fmt.Errorf("group %q: %w", name, err)
	}
	return g, err
}

func display(name string) string {
	if name == "" {
		return "(default)"
	}
	return fmt.Sprintf("%q", name)
}
