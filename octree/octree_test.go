package octree_test

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"spatialhot/geom"
	"spatialhot/octree"
	"spatialhot/spatialtree"
)

func unitBox() geom.BoundingBox {
	return geom.BoundingBox{Min: geom.Point{X: 0, Y: 0, Z: 0}, Max: geom.Point{X: 1, Y: 1, Z: 1}}
}

func TestEmptyTreeVisitCompletes(t *testing.T) {
	tr := octree.New(unitBox())
	visited := false
	ok := tr.VisitNearVertices(func(*spatialtree.Item) bool {
		visited = true
		return true
	}, geom.Point{X: 0.5, Y: 0.5, Z: 0.5}, 1.0)
	require.True(t, ok)
	require.False(t, visited)
}

func TestInsertItemsThenEmptyResets(t *testing.T) {
	tr := octree.New(unitBox())
	tr.InsertItems([]spatialtree.Item{{Position: geom.Point{X: 0.1, Y: 0.1, Z: 0.1}, Data: 1}})
	require.Equal(t, 1, len(tr.Items()))

	tr.InsertItems(nil)
	require.Equal(t, 0, len(tr.Items()))
	require.Equal(t, 0, tr.NumNodes())
	require.Equal(t, 0, tr.Depth())
}

func TestVisitNearVerticesFindsExactMatch(t *testing.T) {
	tr := octree.New(unitBox())
	target := geom.Point{X: 0.5, Y: 0.5, Z: 0.5}
	tr.InsertItems([]spatialtree.Item{
		{Position: target, Data: "hit"},
		{Position: geom.Point{X: 0.01, Y: 0.01, Z: 0.01}, Data: "miss"},
	})

	var found []string
	tr.VisitNearVertices(func(item *spatialtree.Item) bool {
		found = append(found, item.Data.(string))
		return true
	}, target, 1e-9)

	require.Equal(t, []string{"hit"}, found)
}

func TestVisitNearVerticesMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	bbox := unitBox()
	n := 500
	items := make([]spatialtree.Item, n)
	for i := range items {
		items[i] = spatialtree.Item{
			Position: geom.Point{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()},
			Data:     i,
		}
	}

	tr := octree.New(bbox)
	tr.InsertItems(items)

	for trial := 0; trial < 20; trial++ {
		query := geom.Point{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
		eps := rng.Float64() * 0.3

		want := map[int]bool{}
		for _, it := range items {
			if geom.LInfinityPoints(it.Position, query) <= eps {
				want[it.Data.(int)] = true
			}
		}

		got := map[int]bool{}
		tr.VisitNearVertices(func(item *spatialtree.Item) bool {
			got[item.Data.(int)] = true
			return true
		}, query, eps)

		require.Equal(t, want, got, "trial %d: query=%v eps=%v", trial, query, eps)
	}
}

func TestVisitNearVerticesEarlyStop(t *testing.T) {
	bbox := unitBox()
	items := []spatialtree.Item{
		{Position: geom.Point{X: 0.1, Y: 0.1, Z: 0.1}},
		{Position: geom.Point{X: 0.1, Y: 0.1, Z: 0.11}},
		{Position: geom.Point{X: 0.1, Y: 0.1, Z: 0.12}},
	}
	tr := octree.New(bbox)
	tr.InsertItems(items)

	count := 0
	ok := tr.VisitNearVertices(func(*spatialtree.Item) bool {
		count++
		return false
	}, geom.Point{X: 0.1, Y: 0.1, Z: 0.1}, 1.0)

	require.False(t, ok)
	require.Equal(t, 1, count)
}

func TestNilVisitorCompletesWithoutVisiting(t *testing.T) {
	tr := octree.New(unitBox())
	tr.InsertItems([]spatialtree.Item{{Position: geom.Point{X: 0.5, Y: 0.5, Z: 0.5}}})
	ok := tr.VisitNearVertices(nil, geom.Point{X: 0.5, Y: 0.5, Z: 0.5}, 1.0)
	require.True(t, ok)
}

func TestQueryOutsideBoundingBoxReturnsNothing(t *testing.T) {
	tr := octree.New(unitBox())
	tr.InsertItems([]spatialtree.Item{{Position: geom.Point{X: 0.5, Y: 0.5, Z: 0.5}}})

	visited := false
	ok := tr.VisitNearVertices(func(*spatialtree.Item) bool {
		visited = true
		return true
	}, geom.Point{X: 10, Y: 10, Z: 10}, 0.1)

	require.True(t, ok)
	require.False(t, visited)
}

func TestBuildSplitsWhenOverLeafThreshold(t *testing.T) {
	bbox := unitBox()
	n := octree.MaxLeafItems*8 + 1
	items := make([]spatialtree.Item, n)
	rng := rand.New(rand.NewSource(7))
	for i := range items {
		items[i] = spatialtree.Item{Position: geom.Point{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}}
	}

	tr := octree.New(bbox)
	tr.InsertItems(items)

	require.Greater(t, tr.NumNodes(), 1)
	require.Greater(t, tr.Depth(), 1)
}

func TestParallelInsertMatchesSequential(t *testing.T) {
	bbox := unitBox()
	rng := rand.New(rand.NewSource(99))
	n := 3000
	items := make([]spatialtree.Item, n)
	for i := range items {
		items[i] = spatialtree.Item{
			Position: geom.Point{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()},
			Data:     i,
		}
	}

	seq := octree.New(bbox)
	seq.InsertItems(items)

	par := octree.New(bbox)
	par.InsertItemsParallel(items, 256)

	require.Equal(t, seq.NumNodes(), par.NumNodes())
	require.Equal(t, len(seq.Items()), len(par.Items()))

	query := geom.Point{X: 0.5, Y: 0.5, Z: 0.5}
	eps := 0.2

	wantSet := map[int]bool{}
	seq.VisitNearVertices(func(item *spatialtree.Item) bool {
		wantSet[item.Data.(int)] = true
		return true
	}, query, eps)

	gotSet := map[int]bool{}
	par.VisitNearVertices(func(item *spatialtree.Item) bool {
		gotSet[item.Data.(int)] = true
		return true
	}, query, eps)

	require.Equal(t, wantSet, gotSet)
}

func TestPrintNumItemsReportsTotalAcrossLines(t *testing.T) {
	bbox := unitBox()
	n := octree.MaxLeafItems*4 + 1
	items := make([]spatialtree.Item, n)
	rng := rand.New(rand.NewSource(21))
	for i := range items {
		items[i] = spatialtree.Item{Position: geom.Point{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}}
	}

	tr := octree.New(bbox)
	tr.InsertItems(items)

	var buf strings.Builder
	tr.PrintNumItems(&buf)
	out := buf.String()

	require.NotEmpty(t, out)
	require.Equal(t, tr.NumNodes(), strings.Count(out, "items\n"))
}

func TestDistanceFromBoundaryFastPathAgreesWithBruteForce(t *testing.T) {
	bbox := geom.BoundingBox{Min: geom.Point{X: -2, Y: -2, Z: -2}, Max: geom.Point{X: 2, Y: 2, Z: 2}}
	rng := rand.New(rand.NewSource(13))
	items := make([]spatialtree.Item, 0, 2000)
	for i := 0; i < 2000; i++ {
		items = append(items, spatialtree.Item{
			Position: geom.Point{
				X: rng.Float64()*4 - 2,
				Y: rng.Float64()*4 - 2,
				Z: rng.Float64()*4 - 2,
			},
			Data: i,
		})
	}

	tr := octree.New(bbox)
	tr.InsertItems(items)

	for trial := 0; trial < 10; trial++ {
		q := geom.Point{X: 0, Y: 0, Z: 0} // the exact octant boundary corner
		eps := math.Abs(rng.NormFloat64()) + 0.05

		want := 0
		for _, it := range items {
			if geom.LInfinityPoints(it.Position, q) <= eps {
				want++
			}
		}

		got := 0
		tr.VisitNearVertices(func(*spatialtree.Item) bool {
			got++
			return true
		}, q, eps)

		require.Equal(t, want, got, "trial %d eps=%v", trial, eps)
	}
}
