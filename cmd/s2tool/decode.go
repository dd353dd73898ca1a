package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gosphere/geo/s2"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Print the contents of a cell id token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecode(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

// parseCellID accepts a hex token or a decimal cell id.
func parseCellID(s string) (s2.CellID, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		id := s2.CellID(n)
		if id.IsValid() {
			return id, nil
		}
	}
	id := s2.CellIDFromToken(s)
	if !id.IsValid() {
		return 0, fmt.Errorf("%q is not a valid cell id", s)
	}
	return id, nil
}

func runDecode(w io.Writer, arg string) error {
	id, err := parseCellID(arg)
	if err != nil {
		return err
	}
	ll := id.LatLng()
	fmt.Fprintf(w, "token:  %s\n", id.ToToken())
	fmt.Fprintf(w, "id:     %d\n", uint64(id))
	fmt.Fprintf(w, "cell:   %v\n", id)
	fmt.Fprintf(w, "face:   %d\n", id.Face())
	fmt.Fprintf(w, "level:  %d\n", id.Level())
	fmt.Fprintf(w, "center: %.7f, %.7f\n", ll.Lat.Degrees(), ll.Lng.Degrees())
	return nil
}
