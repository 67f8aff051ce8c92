// Package hierarchy assembles a forest out of flat records that reference
// their parent by id. It is used for org charts, but knows nothing about
// employees: the payload is carried through untouched.
package hierarchy

// Record is one flat input row. An empty ParentID means the record has no
// parent in this data set.
type Record[P any] struct {
	ID       string
	ParentID string
	Payload  P
}

// Node is an assembled record together with the children it owns.
// Children slices are never shared between nodes.
type Node[P any] struct {
	Record   Record[P]
	Children []*Node[P]
}

// ID returns the id of the wrapped record.
func (n *Node[P]) ID() string { return n.Record.ID }

// Payload returns the payload of the wrapped record.
func (n *Node[P]) Payload() P { return n.Record.Payload }

// IsLeaf reports whether the node has no children.
func (n *Node[P]) IsLeaf() bool { return len(n.Children) == 0 }

// Filter restricts the working set. A nil Filter keeps every record.
type Filter[P any] func(Record[P]) bool

func And[P any](filters ...Filter[P]) Filter[P] {
	return func(r Record[P]) bool {
		for _, f := range filters {
			if f != nil && !f(r) {
				return false
			}
		}
		return true
	}
}

func Not[P any](f Filter[P]) Filter[P] {
	return func(r Record[P]) bool {
		return f == nil || !f(r)
	}
}

// Report describes input anomalies noticed while assembling. None of them
// stop assembly.
type Report struct {
	// DuplicateIDs lists ids that occur more than once in the working set.
	DuplicateIDs []string
	// SelfReferences lists ids of records whose ParentID equals their own ID.
	SelfReferences []string
	// Detached lists ids that were unreachable from any natural root because
	// their parent chain loops, and were promoted to roots.
	Detached []string
}

// Empty reports whether no anomaly was found.
func (r Report) Empty() bool {
	return len(r.DuplicateIDs) == 0 && len(r.SelfReferences) == 0 && len(r.Detached) == 0
}

// Assemble builds the forest described by records.
//
// A record is a root when its ParentID is empty or does not match the id of
// any record in the working set, so narrowing the scope never hides a record
// whose parent was filtered out. Roots and siblings keep their relative input
// order. records is not modified.
//
// Every working-set record ends up in exactly one place in the forest, even
// when parent references form cycles: a record already placed is never
// attached again, and records that only hang off a cycle are promoted to
// roots in input order.
func Assemble[P any](records []Record[P], filter Filter[P]) []*Node[P] {
	roots, _ := assemble(records, filter, false)
	return roots
}

// AssembleWithReport is Assemble plus a description of duplicate ids,
// self-references and cycle members found in the working set.
func AssembleWithReport[P any](records []Record[P], filter Filter[P]) ([]*Node[P], Report) {
	return assemble(records, filter, true)
}

func assemble[P any](records []Record[P], filter Filter[P], withReport bool) ([]*Node[P], Report) {
	var report Report

	working := make([]int, 0, len(records))
	for i := range records {
		if filter == nil || filter(records[i]) {
			working = append(working, i)
		}
	}
	if len(working) == 0 {
		return []*Node[P]{}, report
	}

	ids := make(map[string]int, len(working))
	for _, i := range working {
		ids[records[i].ID]++
	}

	// parent id -> positions (into records) of its children, in input order.
	childrenOf := make(map[string][]int, len(working))
	for _, i := range working {
		parentID := records[i].ParentID
		if parentID == "" {
			continue
		}
		childrenOf[parentID] = append(childrenOf[parentID], i)
	}

	placed := make(map[int]struct{}, len(working))
	roots := make([]*Node[P], 0, 8)
	for _, i := range working {
		if isRoot(records[i].ParentID, ids) {
			roots = append(roots, grow(records, i, childrenOf, placed))
		}
	}

	if len(placed) != len(working) {
		for _, i := range working {
			if _, ok := placed[i]; ok {
				continue
			}
			if withReport {
				report.Detached = append(report.Detached, records[i].ID)
			}
			roots = append(roots, grow(records, i, childrenOf, placed))
		}
	}

	if withReport {
		seen := make(map[string]struct{}, len(ids))
		for _, i := range working {
			r := records[i]
			if r.ParentID != "" && r.ParentID == r.ID {
				report.SelfReferences = append(report.SelfReferences, r.ID)
			}
			if ids[r.ID] > 1 {
				if _, ok := seen[r.ID]; !ok {
					seen[r.ID] = struct{}{}
					report.DuplicateIDs = append(report.DuplicateIDs, r.ID)
				}
			}
		}
	}

	return roots, report
}

func isRoot(parentID string, ids map[string]int) bool {
	if parentID == "" {
		return true
	}
	_, ok := ids[parentID]
	return !ok
}

// grow builds the subtree rooted at records[start] with an explicit stack.
// A position is claimed when its node is created, so every position is
// attached at most once and the walk terminates on cyclic input.
func grow[P any](records []Record[P], start int, childrenOf map[string][]int, placed map[int]struct{}) *Node[P] {
	placed[start] = struct{}{}
	root := &Node[P]{Record: records[start]}

	stack := []*Node[P]{root}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]

		candidates := childrenOf[cur.Record.ID]
		if len(candidates) == 0 {
			continue
		}
		children := make([]*Node[P], 0, len(candidates))
		for _, c := range candidates {
			if _, ok := placed[c]; ok {
				continue
			}
			placed[c] = struct{}{}
			children = append(children, &Node[P]{Record: records[c]})
		}
		if len(children) == 0 {
			continue
		}
		cur.Children = children
		// Push in reverse so the first child is expanded first.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return root
}
