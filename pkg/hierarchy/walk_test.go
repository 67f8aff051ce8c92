package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleForest(t *testing.T) []*Node[employee] {
	t.Helper()
	return Assemble([]Record[employee]{
		rec("CEO", ""),
		rec("CTO", "CEO"),
		rec("DEV1", "CTO"),
		rec("DEV2", "CTO"),
		rec("CFO", "CEO"),
		rec("CONTRACTOR", "AGENCY"),
	}, nil)
}

func TestFlatten_PreOrderWithDepth(t *testing.T) {
	rows := Flatten(sampleForest(t))

	got := make([]string, 0, len(rows))
	depths := make([]int, 0, len(rows))
	parents := make([]string, 0, len(rows))
	for _, r := range rows {
		got = append(got, r.Node.ID())
		depths = append(depths, r.Depth)
		parents = append(parents, r.ParentID)
	}
	require.Equal(t, []string{"CEO", "CTO", "DEV1", "DEV2", "CFO", "CONTRACTOR"}, got)
	require.Equal(t, []int{0, 1, 2, 2, 1, 0}, depths)
	// Promoted roots have no parent in the forest even if the record names one.
	require.Equal(t, []string{"", "CEO", "CTO", "CTO", "CEO", ""}, parents)
}

func TestWalk_PruneSubtree(t *testing.T) {
	var visited []string
	Walk(sampleForest(t), func(n *Node[employee], _ int) bool {
		visited = append(visited, n.ID())
		return n.ID() != "CTO"
	})
	require.Equal(t, []string{"CEO", "CTO", "CFO", "CONTRACTOR"}, visited)
}

func TestCountAndMaxDepth(t *testing.T) {
	roots := sampleForest(t)
	require.Equal(t, 6, Count(roots))
	require.Equal(t, 3, MaxDepth(roots))

	require.Equal(t, 0, Count[employee](nil))
	require.Equal(t, 0, MaxDepth[employee](nil))
}

func TestPathToAndFind(t *testing.T) {
	roots := sampleForest(t)

	require.Equal(t, []string{"CEO", "CTO", "DEV2"}, ids(PathTo(roots, "DEV2")))
	require.Equal(t, []string{"CONTRACTOR"}, ids(PathTo(roots, "CONTRACTOR")))
	require.Nil(t, PathTo(roots, "MISSING"))

	n, ok := Find(roots, "CFO")
	require.True(t, ok)
	require.Equal(t, "name-CFO", n.Payload().Name)

	_, ok = Find(roots, "MISSING")
	require.False(t, ok)
}
