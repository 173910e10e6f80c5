package assignment_test

import (
	"testing"

	"resto-admin/internal/assignment"
	assignmenterrors "resto-admin/internal/assignment/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// features {1 root, 2 under 1, 3 root}
func sampleUniverse() []*assignment.Item {
	return []*assignment.Item{
		{ID: 1, Label: "Master Data", Children: []*assignment.Item{{ID: 2, Label: "Categories"}}},
		{ID: 3, Label: "Reports"},
	}
}

func ids(items []*assignment.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestDiffer_AssignMovesSubtree(t *testing.T) {
	d := assignment.NewDiffer(sampleUniverse(), nil, nil)

	unassigned := d.UnassignedTree()
	assert.Equal(t, []int64{1, 3}, ids(unassigned))
	assert.Equal(t, []int64{2}, ids(unassigned[0].Children))
	assert.Empty(t, d.Assigned())

	d.Assign(1)

	assert.Equal(t, []int64{1, 2}, d.Assigned())
	assert.Equal(t, []int64{3}, d.Unassigned())
	assert.Equal(t, []int64{1}, ids(d.AssignedTree()))
	assert.Equal(t, []int64{3}, ids(d.UnassignedTree()))
}

func TestDiffer_RoundTripRestoresPartition(t *testing.T) {
	d := assignment.NewDiffer(sampleUniverse(), []int64{3}, nil)
	beforeAssigned, beforeUnassigned := d.Assigned(), d.Unassigned()

	d.Assign(1)
	d.Unassign(1)

	assert.Equal(t, beforeAssigned, d.Assigned())
	assert.Equal(t, beforeUnassigned, d.Unassigned())
}

func TestDiffer_UnassignChildPromotesInOtherView(t *testing.T) {
	d := assignment.NewDiffer(sampleUniverse(), []int64{1, 2}, nil)

	d.Unassign(2)

	assert.Equal(t, []int64{1}, d.Assigned())
	unassigned := d.UnassignedTree()
	assert.Equal(t, []int64{2, 3}, ids(unassigned))
}

func TestDiffer_DropsUnknownAssigned(t *testing.T) {
	d := assignment.NewDiffer(sampleUniverse(), []int64{3, 99}, nil)

	assert.Equal(t, []int64{3}, d.Assigned())
	assert.Equal(t, []int64{99}, d.Unknown([]int64{1, 99}))
}

func TestDiffer_OnChange(t *testing.T) {
	var calls [][]int64
	d := assignment.NewDiffer(sampleUniverse(), nil, func(a []int64) { calls = append(calls, a) })

	d.AssignAll()
	d.UnassignSelected([]int64{1})
	d.UnassignAll()

	require.Len(t, calls, 3)
	assert.Equal(t, []int64{1, 2, 3}, calls[0])
	assert.Equal(t, []int64{3}, calls[1])
	assert.Empty(t, calls[2])
}

func TestDiffer_SearchKeepsAncestors(t *testing.T) {
	d := assignment.NewDiffer(sampleUniverse(), nil, nil)

	assigned, unassigned := d.Search("CATEG")

	assert.Empty(t, assigned)
	require.Len(t, unassigned, 1)
	assert.Equal(t, int64(1), unassigned[0].ID)
	assert.Equal(t, []int64{2}, ids(unassigned[0].Children))
}

func TestDiffer_NarrowingSearchNeverWidens(t *testing.T) {
	d := assignment.NewDiffer(sampleUniverse(), nil, nil)
	count := func(nodes []*assignment.Item) int {
		n := 0
		stack := append([]*assignment.Item(nil), nodes...)
		for len(stack) > 0 {
			it := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n++
			stack = append(stack, it.Children...)
		}
		return n
	}

	prev := count(d.UnassignedTree())
	for _, term := range []string{"r", "re", "rep", "repo", "reports", "reportsx"} {
		_, unassigned := d.Search(term)
		got := count(unassigned)
		assert.LessOrEqual(t, got, prev, term)
		prev = got
	}
	assert.Zero(t, prev)
}

func TestDiffer_SearchHiddenChildrenStillMove(t *testing.T) {
	d := assignment.NewDiffer(sampleUniverse(), nil, nil)

	_, unassigned := d.Search("master")
	require.Len(t, unassigned, 1)
	assert.Empty(t, unassigned[0].Children)

	d.Assign(1)
	assert.Equal(t, []int64{1, 2}, d.Assigned())
}

func TestDiffer_Apply(t *testing.T) {
	tests := []struct {
		name    string
		cmd     assignment.Command
		want    []int64
		wantErr error
	}{
		{name: "assign", cmd: assignment.Command{Op: assignment.OpAssign, IDs: []int64{1}}, want: []int64{1, 2}},
		{name: "assign selected", cmd: assignment.Command{Op: assignment.OpAssignSelected, IDs: []int64{2, 3}}, want: []int64{2, 3}},
		{name: "assign all", cmd: assignment.Command{Op: assignment.OpAssignAll}, want: []int64{1, 2, 3}},
		{name: "missing ids", cmd: assignment.Command{Op: assignment.OpAssign}, wantErr: assignmenterrors.ErrMissingIDs},
		{name: "unknown op", cmd: assignment.Command{Op: "toggle", IDs: []int64{1}}, wantErr: assignmenterrors.ErrUnknownOp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := assignment.NewDiffer(sampleUniverse(), nil, nil)
			err := d.Apply(tt.cmd)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Assigned())
		})
	}
}

func TestDiff(t *testing.T) {
	added, removed := assignment.Diff([]int64{5, 1, 3}, []int64{3, 4, 2})

	assert.Equal(t, []int64{2, 4}, added)
	assert.Equal(t, []int64{1, 5}, removed)

	added, removed = assignment.Diff(nil, nil)
	assert.Empty(t, added)
	assert.Empty(t, removed)
}
