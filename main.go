package main

import (
	"fmt"
	"os"

	"github.com/heathj/minidom/config"
	"github.com/heathj/minidom/dom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, logLevel string

	rootCmd := &cobra.Command{
		Use:           "minidom",
		Short:         "Build, inspect and serialize minidom trees from markup",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a minidom.yaml file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	load := func(path string) (*dom.Window, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
			return nil, errors.Wrap(err, "--log-level")
		}
		w := dom.NewWindow(dom.WithLogger(cfg.Logger()))
		if err := cfg.Define(w); err != nil {
			return nil, err
		}
		markup, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		w.Document.Body().SetInnerHTML(string(markup))
		return w, nil
	}

	rootCmd.AddCommand(
		renderCmd(load),
		treeCmd(load),
		walkCmd(load),
	)
	return rootCmd
}

type loader func(path string) (*dom.Window, error)

func renderCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "render <file>",
		Short: "Parse markup into a document body and serialize it back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), w.Document.Body().InnerHTML())
			return nil
		},
	}
}

func treeCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the document tree built from markup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), w.Document.String())
			return nil
		},
	}
}

func walkCmd(load loader) *cobra.Command {
	var elements bool
	cmd := &cobra.Command{
		Use:   "walk <file>",
		Short: "List the nodes of the document body in tree order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := load(args[0])
			if err != nil {
				return err
			}
			var filter dom.NodeFilter
			if elements {
				filter = dom.ElementsOnly
			}
			walker := w.Document.CreateTreeWalker(w.Document.Body(), filter)
			out := cmd.OutOrStdout()
			for node := walker.NextNode(); node != nil; node = walker.NextNode() {
				switch node.NodeType {
				case dom.ElementNode:
					fmt.Fprintf(out, "%s\t%s\n", node.NodeName, node.Interface())
				default:
					fmt.Fprintf(out, "%s\t%q\n", node.NodeName, node.NodeValue())
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&elements, "elements", false, "only list elements")
	return cmd
}
