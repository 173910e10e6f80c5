package feature

import (
	"fmt"
	"sort"

	featureerrors "resto-admin/internal/feature/errors"
)

// BuildTree assembles a flat list into a forest. A record whose parent is missing from flat (for example
// filtered out) becomes a root. Children keep input order.
//
// The platform is expected to reject parent cycles; if one slips through, the records on the cycle (and
// everything under them) can never be reached from a root and BuildTree returns ErrFeatureCycle naming them.
func BuildTree(flat []Feature) ([]*Node, error) {
	nodes := make(map[int64]*Node, len(flat))
	order := make([]*Node, 0, len(flat))

	for _, f := range flat {
		if _, dup := nodes[f.ID]; dup {
			return nil, featureerrors.ErrDuplicateFeature.WithErr(fmt.Errorf("feature id %d", f.ID))
		}
		n := &Node{Feature: f}
		nodes[f.ID] = n
		order = append(order, n)
	}

	roots := make([]*Node, 0)
	for _, n := range order {
		if n.ParentID != nil {
			if parent, ok := nodes[*n.ParentID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}

	if reached := Count(roots); reached != len(order) {
		seen := make(map[int64]struct{}, reached)
		for _, f := range Flatten(roots) {
			seen[f.ID] = struct{}{}
		}
		stranded := make([]int64, 0, len(order)-reached)
		for _, n := range order {
			if _, ok := seen[n.ID]; !ok {
				stranded = append(stranded, n.ID)
			}
		}
		return nil, featureerrors.ErrFeatureCycle.WithErr(fmt.Errorf("unreachable feature ids %v", stranded))
	}

	return roots, nil
}

// CollectIDs returns n's ID followed by every descendant ID, depth first.
// A visited set keeps hand-built cyclic trees from looping.
func CollectIDs(n *Node) []int64 {
	if n == nil {
		return nil
	}

	ids := make([]int64, 0)
	visited := make(map[*Node]struct{})
	stack := []*Node{n}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}
		ids = append(ids, cur.ID)

		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
	return ids
}

// Filter returns a pruned copy of nodes: a node survives when match accepts it or any descendant survives.
// The input is not modified.
func Filter(nodes []*Node, match func(*Node) bool) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		children := Filter(n.Children, match)
		if len(children) == 0 && !match(n) {
			continue
		}
		out = append(out, &Node{Feature: n.Feature, Children: children})
	}
	return out
}

// Flatten lists the forest in pre-order.
func Flatten(nodes []*Node) []Feature {
	out := make([]Feature, 0, len(nodes))
	var walk func([]*Node)
	walk = func(ns []*Node) {
		for _, n := range ns {
			out = append(out, n.Feature)
			walk(n.Children)
		}
	}
	walk(nodes)
	return out
}

func Count(nodes []*Node) int {
	total := 0
	for _, n := range nodes {
		total += 1 + Count(n.Children)
	}
	return total
}

// SortTree orders every sibling list by SortOrder, then ID.
func SortTree(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		return nodes[i].ID < nodes[j].ID
	})
	for _, n := range nodes {
		SortTree(n.Children)
	}
}

func Find(nodes []*Node, id int64) *Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}
