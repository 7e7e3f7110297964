// vertexdedup is a benchmark CLI for the spatial-sort trees: it builds a
// tree of the requested type over a batch of deterministically generated
// points, times the build and a round of near-vertex queries over
// --num-iter iterations, and emits a JSON report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"time"

	"spatialhot/diagnostics"
	"spatialhot/fork"
	"spatialhot/geom"
	"spatialhot/internal/genpoints"
	"spatialhot/octree"
	"spatialhot/spatialtree"
	"spatialhot/widetree"
)

type treeBuilder interface {
	spatialtree.Tree
}

type result struct {
	TreeType      string             `json:"tree_type"`
	NumVertices   int                `json:"num_vertices"`
	NumIterations int                `json:"num_iterations"`
	NumThreads    int                `json:"num_threads"`
	BuildSeconds  float64            `json:"build_seconds"`
	QuerySeconds  float64            `json:"query_seconds"`
	NumNodes      int                `json:"num_nodes"`
	Depth         int                `json:"depth"`
	SizeBytes     int                `json:"size_bytes"`
	Report        diagnostics.Report `json:"report"`
}

func main() {
	var (
		numVertices = flag.Int("num-vertices", 100_000, "Number of vertices to generate and insert")
		numIter     = flag.Int("num-iter", 4, "Number of build+query iterations to time")
		numThreads  = flag.Int("num-threads", runtime.NumCPU(), "GOMAXPROCS value for the run (threads available to the parallel build path)")
		treeType    = flag.String("tree-type", "octree", `Tree engine to benchmark: "octree" or "widetree"`)
		seed        = flag.Int64("seed", time.Now().UnixNano(), "Base RNG seed for point generation")
		parallel    = flag.Bool("parallel", false, "Use the data-parallel build path (queries always run sequentially)")
		printItems  = flag.Bool("print-num-items", false, "Dump a per-node item-count line for the final build to stderr")
	)
	flag.Parse()

	if *numVertices <= 0 {
		fail("num-vertices must be > 0")
	}
	if *numIter <= 0 {
		fail("num-iter must be > 0")
	}
	if *numThreads <= 0 {
		fail("num-threads must be > 0")
	}
	if *treeType != "octree" && *treeType != "widetree" {
		fail("tree-type must be \"octree\" or \"widetree\", got %q", *treeType)
	}

	runtime.GOMAXPROCS(*numThreads)

	bbox := geom.BoundingBox{Min: geom.Point{X: -1, Y: -1, Z: -1}, Max: geom.Point{X: 1, Y: 1, Z: 1}}

	var buildTotal, queryTotal time.Duration
	var last treeBuilder

	for iter := 0; iter < *numIter; iter++ {
		fmt.Fprintf(os.Stderr, "[%d/%d] generating %d vertices ...\n", iter+1, *numIter, *numVertices)
		items := genpoints.Items(bbox, uint64(*seed)+uint64(iter)*0x9e3779b97f4a7c15, *numVertices)

		var tr treeBuilder
		start := time.Now()
		switch *treeType {
		case "octree":
			t := octree.New(bbox)
			if *parallel {
				t.InsertItemsParallel(items, fork.DefaultGrain)
			} else {
				t.InsertItems(items)
			}
			tr = t
		case "widetree":
			t := widetree.New(bbox)
			if *parallel {
				t.InsertItemsParallel(items, fork.DefaultGrain)
			} else {
				t.InsertItems(items)
			}
			tr = t
		}
		buildTotal += time.Since(start)

		queries := genpoints.Points(bbox, uint64(*seed)+uint64(iter)*0x517cc1b727220a95, 1000)
		rng := rand.New(rand.NewSource(*seed + int64(iter)))
		start = time.Now()
		for _, q := range queries {
			eps := rng.Float64() * 0.2
			tr.VisitNearVertices(func(*spatialtree.Item) bool { return true }, q, eps)
		}
		queryTotal += time.Since(start)

		last = tr
	}

	res := result{
		TreeType:      *treeType,
		NumVertices:   *numVertices,
		NumIterations: *numIter,
		NumThreads:    *numThreads,
		BuildSeconds:  buildTotal.Seconds() / float64(*numIter),
		QuerySeconds:  queryTotal.Seconds() / float64(*numIter),
		NumNodes:      last.NumNodes(),
		Depth:         last.Depth(),
		SizeBytes:     last.Size(),
	}
	if reporter, ok := last.(interface{ Report() diagnostics.Report }); ok {
		res.Report = reporter.Report()
	}
	if *printItems {
		if printer, ok := last.(interface{ PrintNumItems(w io.Writer) }); ok {
			printer.PrintNumItems(os.Stderr)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		fail("failed to encode result: %v", err)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
