package assignment

import (
	"fmt"
	"slices"
	"strings"

	assignmenterrors "resto-admin/internal/assignment/errors"
)

// Differ partitions a universe of candidate items into assigned and unassigned.
// Moving an item always moves its whole subtree, including nodes hidden by a search.
// Differ is not safe for concurrent use; the service builds one per request.
type Differ struct {
	roots    []*Item
	index    map[int64]*Item
	assigned map[int64]struct{}
	onChange func(assigned []int64)
}

// NewDiffer builds a Differ over universe. Assigned IDs that are not in the universe are dropped.
// onChange may be nil.
func NewDiffer(universe []*Item, assigned []int64, onChange func(assigned []int64)) *Differ {
	d := &Differ{
		roots:    universe,
		index:    make(map[int64]*Item),
		assigned: make(map[int64]struct{}, len(assigned)),
		onChange: onChange,
	}

	stack := slices.Clone(universe)
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := d.index[it.ID]; seen {
			continue
		}
		d.index[it.ID] = it
		stack = append(stack, it.Children...)
	}

	for _, id := range assigned {
		if _, ok := d.index[id]; ok {
			d.assigned[id] = struct{}{}
		}
	}
	return d
}

// subtree returns id and every descendant ID. Unknown IDs yield nothing.
func (d *Differ) subtree(id int64) []int64 {
	root, ok := d.index[id]
	if !ok {
		return nil
	}

	out := make([]int64, 0, 1)
	visited := make(map[int64]struct{})
	stack := []*Item{root}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[it.ID]; ok {
			continue
		}
		visited[it.ID] = struct{}{}
		out = append(out, it.ID)
		stack = append(stack, it.Children...)
	}
	return out
}

func (d *Differ) move(ids []int64, assign bool) {
	for _, id := range ids {
		for _, member := range d.subtree(id) {
			if assign {
				d.assigned[member] = struct{}{}
			} else {
				delete(d.assigned, member)
			}
		}
	}
	d.changed()
}

func (d *Differ) changed() {
	if d.onChange != nil {
		d.onChange(d.Assigned())
	}
}

func (d *Differ) Assign(id int64)   { d.move([]int64{id}, true) }
func (d *Differ) Unassign(id int64) { d.move([]int64{id}, false) }

func (d *Differ) AssignSelected(ids []int64)   { d.move(ids, true) }
func (d *Differ) UnassignSelected(ids []int64) { d.move(ids, false) }

func (d *Differ) AssignAll() {
	for id := range d.index {
		d.assigned[id] = struct{}{}
	}
	d.changed()
}

func (d *Differ) UnassignAll() {
	clear(d.assigned)
	d.changed()
}

// Apply runs cmd against the differ.
func (d *Differ) Apply(cmd Command) error {
	switch cmd.Op {
	case OpAssign, OpUnassign, OpAssignSelected, OpUnassignSelected:
		if len(cmd.IDs) == 0 {
			return assignmenterrors.ErrMissingIDs
		}
	}

	switch cmd.Op {
	case OpAssign:
		d.Assign(cmd.IDs[0])
	case OpUnassign:
		d.Unassign(cmd.IDs[0])
	case OpAssignSelected:
		d.AssignSelected(cmd.IDs)
	case OpUnassignSelected:
		d.UnassignSelected(cmd.IDs)
	case OpAssignAll:
		d.AssignAll()
	case OpUnassignAll:
		d.UnassignAll()
	default:
		return assignmenterrors.ErrUnknownOp.WithErr(fmt.Errorf("op %q", cmd.Op))
	}
	return nil
}

func (d *Differ) IsAssigned(id int64) bool {
	_, ok := d.assigned[id]
	return ok
}

// Unknown returns the IDs of ids that are not in the universe, in input order.
func (d *Differ) Unknown(ids []int64) []int64 {
	var out []int64
	for _, id := range ids {
		if _, ok := d.index[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// Assigned returns the assigned IDs in ascending order.
func (d *Differ) Assigned() []int64 {
	out := make([]int64, 0, len(d.assigned))
	for id := range d.assigned {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Unassigned returns the unassigned IDs in ascending order.
func (d *Differ) Unassigned() []int64 {
	out := make([]int64, 0, len(d.index)-len(d.assigned))
	for id := range d.index {
		if _, ok := d.assigned[id]; !ok {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

func (d *Differ) AssignedTree() []*Item {
	return project(d.roots, d.IsAssigned, make(map[int64]struct{}))
}

func (d *Differ) UnassignedTree() []*Item {
	return project(d.roots, func(id int64) bool { return !d.IsAssigned(id) }, make(map[int64]struct{}))
}

// Search returns both views filtered by term. A node is kept when its label contains term
// (case-insensitively) or when one of its descendants is kept. An empty term keeps everything.
func (d *Differ) Search(term string) (assigned, unassigned []*Item) {
	return SearchTree(d.AssignedTree(), term), SearchTree(d.UnassignedTree(), term)
}

// SearchTree filters a forest by label. The input is not modified.
func SearchTree(nodes []*Item, term string) []*Item {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nodes
	}
	return filterItems(nodes, func(it *Item) bool {
		return strings.Contains(strings.ToLower(it.Label), needle)
	})
}

func filterItems(nodes []*Item, match func(*Item) bool) []*Item {
	out := make([]*Item, 0, len(nodes))
	for _, n := range nodes {
		children := filterItems(n.Children, match)
		if len(children) == 0 && !match(n) {
			continue
		}
		out = append(out, &Item{ID: n.ID, Label: n.Label, Children: children})
	}
	return out
}

// project copies the forest keeping only nodes accepted by keep. Children of a dropped node
// take its place among its siblings.
func project(nodes []*Item, keep func(id int64) bool, visited map[int64]struct{}) []*Item {
	out := make([]*Item, 0, len(nodes))
	for _, n := range nodes {
		if _, seen := visited[n.ID]; seen {
			continue
		}
		visited[n.ID] = struct{}{}

		children := project(n.Children, keep, visited)
		if keep(n.ID) {
			out = append(out, &Item{ID: n.ID, Label: n.Label, Children: children})
			continue
		}
		out = append(out, children...)
	}
	return out
}

// Diff reports which IDs after adds to before and which it drops. Both results are ascending.
func Diff(before, after []int64) (added, removed []int64) {
	prev := make(map[int64]struct{}, len(before))
	for _, id := range before {
		prev[id] = struct{}{}
	}
	next := make(map[int64]struct{}, len(after))
	for _, id := range after {
		next[id] = struct{}{}
	}

	added = make([]int64, 0)
	for id := range next {
		if _, ok := prev[id]; !ok {
			added = append(added, id)
		}
	}
	removed = make([]int64, 0)
	for id := range prev {
		if _, ok := next[id]; !ok {
			removed = append(removed, id)
		}
	}
	slices.Sort(added)
	slices.Sort(removed)
	return added, removed
}
