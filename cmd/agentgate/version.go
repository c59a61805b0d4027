package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mandalnilabja/agentgate/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "agentgate version %s\n", version.Version)
		},
	}
}
