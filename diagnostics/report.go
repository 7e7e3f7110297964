// Package diagnostics renders a hierarchical byte-size / item-count report
// for a built tree, for both human consumption (String) and the benchmark
// CLI's machine-readable output (JSON).
package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Report is one node of a hierarchical size report: a name, its own byte
// footprint, the number of items it directly owns, and its children.
type Report struct {
	Name     string   `json:"name"`
	Bytes    int      `json:"bytes"`
	NumItems int      `json:"num_items,omitempty"`
	Children []Report `json:"children,omitempty"`
}

// TotalBytes returns Bytes plus the recursive total of all children.
func (r Report) TotalBytes() int {
	total := r.Bytes
	for _, c := range r.Children {
		total += c.TotalBytes()
	}
	return total
}

// String renders the report as an indented, human-readable tree using
// humanized byte counts (e.g. "12 kB" rather than "12000").
func (r Report) String() string {
	var sb strings.Builder
	r.writeIndented(&sb, 0)
	return sb.String()
}

func (r Report) writeIndented(sb *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	fmt.Fprintf(sb, "%s- %s: %s", prefix, r.Name, humanize.Bytes(uint64(r.TotalBytes())))
	if r.NumItems > 0 {
		fmt.Fprintf(sb, " (%d items)", r.NumItems)
	}
	sb.WriteByte('\n')
	for _, c := range r.Children {
		c.writeIndented(sb, indent+1)
	}
}

// JSON returns a JSON rendering of the report, or an error payload if
// marshaling unexpectedly fails.
func (r Report) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(b)
}
