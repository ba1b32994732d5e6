package main

import (
	"os"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
)

// newEditCmd opens a document fixture in $EDITOR, the same way glow's
// own editor integration drops a user into their shell editor rather
// than reimplementing one (SPEC_FULL.md DOMAIN STACK).
func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [path]",
		Short: "Open a document-JSON fixture in $EDITOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := editor.Cmd(appName, args[0])
			if err != nil {
				return err
			}
			c.Stdin = os.Stdin
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			return c.Run()
		},
	}
}
