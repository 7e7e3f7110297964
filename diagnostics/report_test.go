package diagnostics_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"spatialhot/diagnostics"
)

func TestTotalBytesSumsChildrenRecursively(t *testing.T) {
	r := diagnostics.Report{
		Name:  "root",
		Bytes: 10,
		Children: []diagnostics.Report{
			{Name: "a", Bytes: 5},
			{Name: "b", Bytes: 7, Children: []diagnostics.Report{
				{Name: "c", Bytes: 3},
			}},
		},
	}
	require.Equal(t, 25, r.TotalBytes())
}

func TestStringIncludesNamesAndItemCounts(t *testing.T) {
	r := diagnostics.Report{
		Name:     "root",
		Bytes:    100,
		NumItems: 4,
		Children: []diagnostics.Report{{Name: "leaf", Bytes: 10, NumItems: 2}},
	}
	out := r.String()
	require.Contains(t, out, "root")
	require.Contains(t, out, "leaf")
	require.Contains(t, out, "4 items")
	require.True(t, strings.Contains(out, "\n"))
}

func TestJSONRoundTrips(t *testing.T) {
	r := diagnostics.Report{Name: "root", Bytes: 42, NumItems: 1}
	var decoded diagnostics.Report
	require.NoError(t, json.Unmarshal([]byte(r.JSON()), &decoded))
	require.Equal(t, r, decoded)
}
