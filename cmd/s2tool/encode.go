package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gosphere/geo/s2"
)

var encodeOpt struct {
	lat   float64
	lng   float64
	level int
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Convert a latitude/longitude to a cell id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEncode(cmd.OutOrStdout())
	},
}

func init() {
	flag := encodeCmd.Flags()
	flag.Float64Var(&encodeOpt.lat, "lat", 0, "Latitude in degrees")
	flag.Float64Var(&encodeOpt.lng, "lng", 0, "Longitude in degrees")
	flag.IntVar(&encodeOpt.level, "level", 30, "Cell level, 0 to 30")
	encodeCmd.MarkFlagRequired("lat")
	encodeCmd.MarkFlagRequired("lng")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(w io.Writer) error {
	if encodeOpt.level < 0 || encodeOpt.level > 30 {
		return fmt.Errorf("level %d out of range [0, 30]", encodeOpt.level)
	}
	ll := s2.LatLngFromDegrees(encodeOpt.lat, encodeOpt.lng)
	if !ll.IsValid() {
		return fmt.Errorf("invalid coordinates %v", ll)
	}
	id := s2.CellIDFromLatLng(ll).Parent(encodeOpt.level)
	fmt.Fprintf(w, "token: %s\n", id.ToToken())
	fmt.Fprintf(w, "id:    %d\n", uint64(id))
	fmt.Fprintf(w, "cell:  %v\n", id)
	return nil
}
