package hierarchy

// Entry is one row of a flattened forest.
type Entry[P any] struct {
	Node     *Node[P]
	Depth    int
	ParentID string
}

type frame[P any] struct {
	node     *Node[P]
	depth    int
	parentID string
}

// Walk visits the forest in pre-order. Returning false from fn skips the
// children of the node just visited.
func Walk[P any](roots []*Node[P], fn func(n *Node[P], depth int) bool) {
	walk(roots, func(f frame[P]) bool { return fn(f.node, f.depth) })
}

func walk[P any](roots []*Node[P], fn func(f frame[P]) bool) {
	stack := make([]frame[P], 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame[P]{node: roots[i]})
	}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]
		if cur.node == nil {
			continue
		}
		if !fn(cur) {
			continue
		}
		for i := len(cur.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame[P]{
				node:     cur.node.Children[i],
				depth:    cur.depth + 1,
				parentID: cur.node.Record.ID,
			})
		}
	}
}

// Flatten returns the forest in pre-order. ParentID is the id of the node the
// entry is attached to in the forest, which differs from Record.ParentID for
// promoted roots.
func Flatten[P any](roots []*Node[P]) []Entry[P] {
	out := make([]Entry[P], 0, len(roots))
	walk(roots, func(f frame[P]) bool {
		out = append(out, Entry[P]{Node: f.node, Depth: f.depth, ParentID: f.parentID})
		return true
	})
	return out
}

func Count[P any](roots []*Node[P]) int {
	total := 0
	Walk(roots, func(*Node[P], int) bool {
		total++
		return true
	})
	return total
}

// MaxDepth returns the number of levels in the forest; 0 when it is empty.
func MaxDepth[P any](roots []*Node[P]) int {
	levels := 0
	Walk(roots, func(_ *Node[P], depth int) bool {
		if depth+1 > levels {
			levels = depth + 1
		}
		return true
	})
	return levels
}

// Find returns the first node with the given id in pre-order.
func Find[P any](roots []*Node[P], id string) (*Node[P], bool) {
	path := PathTo(roots, id)
	if len(path) == 0 {
		return nil, false
	}
	return path[len(path)-1], true
}

// PathTo returns the chain of nodes from a root down to the first node with
// the given id, or nil when no such node exists.
func PathTo[P any](roots []*Node[P], id string) []*Node[P] {
	parents := make(map[*Node[P]]*Node[P])
	var target *Node[P]
	walk(roots, func(f frame[P]) bool {
		if target != nil {
			return false
		}
		if f.node.Record.ID == id {
			target = f.node
			return false
		}
		for _, c := range f.node.Children {
			parents[c] = f.node
		}
		return true
	})
	if target == nil {
		return nil
	}

	path := []*Node[P]{target}
	for cur, ok := parents[target]; ok; cur, ok = parents[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
