package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosphere/geo/s2"
)

func TestParseCellID(t *testing.T) {
	id, err := parseCellID("80c2c")
	require.NoError(t, err)
	require.Equal(t, s2.CellID(0x80c2c00000000000), id)

	id, err = parseCellID("9278189288569176064")
	require.NoError(t, err)
	require.Equal(t, s2.CellID(0x80c2c00000000000), id)

	_, err = parseCellID("not-a-cell")
	require.Error(t, err)

	_, err = parseCellID("0")
	require.Error(t, err)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	encodeOpt.lat = 48.857980
	encodeOpt.lng = 2.294888
	encodeOpt.level = 12

	var out bytes.Buffer
	require.NoError(t, runEncode(&out))
	require.Contains(t, out.String(), "token: ")

	id := s2.CellIDFromLatLng(s2.LatLngFromDegrees(encodeOpt.lat, encodeOpt.lng)).Parent(12)
	require.Contains(t, out.String(), id.ToToken())

	out.Reset()
	require.NoError(t, runDecode(&out, id.ToToken()))
	require.Contains(t, out.String(), "level:  12")
	require.Contains(t, out.String(), "face:   ")
}

func TestEncodeRejectsBadInput(t *testing.T) {
	encodeOpt.lat = 91
	encodeOpt.lng = 0
	encodeOpt.level = 12
	var out bytes.Buffer
	require.Error(t, runEncode(&out))

	encodeOpt.lat = 0
	encodeOpt.level = 31
	require.Error(t, runEncode(&out))
}

func TestNeighbors(t *testing.T) {
	neighborsOpt.vertex = false
	var out bytes.Buffer
	require.NoError(t, runNeighbors(&out, s2.CellIDFromFace(1).ToToken()))
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)

	neighborsOpt.vertex = true
	neighborsOpt.level = 1
	out.Reset()
	require.Error(t, runNeighbors(&out, s2.CellIDFromFace(1).ToToken()),
		"vertex level cannot exceed the cell's level")

	neighborsOpt.level = 0
	out.Reset()
	require.NoError(t, runNeighbors(&out, s2.CellIDFromFace(1).ToToken()))
	require.NotEmpty(t, out.String())
}
