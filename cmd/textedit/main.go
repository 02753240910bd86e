package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JackWReid/textedit/internal/config"
)

// version is set during build with -ldflags.
var version = "dev"

type options struct {
	configPath string
	halign     string
	valign     string
	tabWidth   int
	output     string
	logPath    string
	noState    bool
}

func newRootCmd() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:   "textedit [file]",
		Short: "A small terminal text editor with configurable text alignment",
		Long: `textedit edits one plain text file in the terminal. Lines can be aligned
left, center-left, center, center-right or right, and the document can sit at
the top, center or bottom of the screen.

With no file argument, piped standard input becomes the initial text.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			return run(cmd, file, opts)
		},
	}

	f := root.Flags()
	f.StringVar(&opts.configPath, "config", "", "configuration file (default $XDG_CONFIG_HOME/textedit/config.conf)")
	f.StringVar(&opts.halign, "halign", "", "horizontal alignment: left, center-left, center, center-right or right")
	f.StringVar(&opts.valign, "valign", "", "vertical alignment: top, center or bottom")
	f.IntVar(&opts.tabWidth, "tab-width", 0, "columns per tab stop")
	f.StringVarP(&opts.output, "output", "o", "", "file to save to when editing standard input or a new buffer")
	f.StringVar(&opts.logPath, "log", os.Getenv("TEXTEDIT_LOG"), "append debug logs to this file")
	f.BoolVar(&opts.noState, "no-state", false, "do not remember cursor positions")

	root.AddCommand(newVersionCmd(), newConfigCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of textedit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "textedit version %s\n", version)
		},
	}
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(args)
			if err != nil {
				return err
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the default configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	configCmd.AddCommand(initCmd, pathCmd)
	return configCmd
}

func configPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return config.DefaultPath()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "textedit: %v\n", err)
		os.Exit(1)
	}
}
