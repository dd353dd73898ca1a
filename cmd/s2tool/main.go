// s2tool is a command line utility for inspecting cells of the S2
// hierarchical decomposition of the sphere. It converts between
// latitude/longitude coordinates, cell id tokens and the face/position
// notation, and lists cell neighbors.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "s2tool",
	Short: "Inspect S2 cell ids",
	Long: `s2tool converts between latitude/longitude coordinates and S2 cell ids.

A cell id is printed both as a hex token and in face/position notation,
for example "2/03132".`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
