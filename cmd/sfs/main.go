// Command sfs is a reference shell for the SFS filesystem: it can format a
// new volume image and open an interactive session against it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sfs",
		Short: "Simple File System reference shell",
	}

	root.AddCommand(newInitCmd())
	root.AddCommand(newShellCmd())

	return root
}
