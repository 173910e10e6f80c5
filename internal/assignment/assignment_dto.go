package assignment

// PreviewRequest replays one screen action against a working selection.
// Assigned is the selection the screen currently shows; nil means the persisted one.
type PreviewRequest struct {
	Assigned []int64  `json:"assigned"`
	Command  *Command `json:"command"`
	Term     string   `json:"term"`
}

type CommitRequest struct {
	Assigned []int64 `json:"assigned" binding:"required"`
}

// View is the partition as the assignment screen renders it. Added and Removed compare it with
// what the platform currently stores.
type View struct {
	Kind           Kind    `json:"kind"`
	OwnerID        int64   `json:"ownerId"`
	Assigned       []int64 `json:"assigned"`
	Unassigned     []int64 `json:"unassigned"`
	AssignedTree   []*Item `json:"assignedTree"`
	UnassignedTree []*Item `json:"unassignedTree"`
	Added          []int64 `json:"added"`
	Removed        []int64 `json:"removed"`
}
