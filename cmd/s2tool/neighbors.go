package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gosphere/geo/s2"
)

var neighborsOpt struct {
	vertex bool
	level  int
}

var neighborsCmd = &cobra.Command{
	Use:   "neighbors <token>",
	Short: "List the neighbors of a cell",
	Long: `List the four edge neighbors of a cell, or with --vertex the
neighbors sharing each vertex at a given level.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNeighbors(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	flag := neighborsCmd.Flags()
	flag.BoolVar(&neighborsOpt.vertex, "vertex", false, "List vertex neighbors instead of edge neighbors")
	flag.IntVar(&neighborsOpt.level, "level", -1, "Level for vertex neighbors, defaults to the cell's own level")
	rootCmd.AddCommand(neighborsCmd)
}

func runNeighbors(w io.Writer, arg string) error {
	id, err := parseCellID(arg)
	if err != nil {
		return err
	}
	var nbrs []s2.CellID
	if neighborsOpt.vertex {
		level := neighborsOpt.level
		if level < 0 {
			level = id.Level()
		}
		if level > id.Level() {
			return fmt.Errorf("vertex neighbor level %d exceeds cell level %d", level, id.Level())
		}
		nbrs = id.VertexNeighbors(level)
	} else {
		for _, n := range id.EdgeNeighbors() {
			nbrs = append(nbrs, n)
		}
	}
	for _, n := range nbrs {
		fmt.Fprintf(w, "%s %v\n", n.ToToken(), n)
	}
	return nil
}
