package assignment

// Item is a candidate in an assignment screen. Features form trees; permissions and roles are flat.
type Item struct {
	ID       int64   `json:"id"`
	Label    string  `json:"label"`
	Children []*Item `json:"children,omitempty"`
}

// Kind names an assignment screen: what is being assigned to what.
type Kind string

const (
	KindRoleFeatures       Kind = "role-features"
	KindRolePermissions    Kind = "role-permissions"
	KindUserRoles          Kind = "user-roles"
	KindFeaturePermissions Kind = "feature-permissions"
)

// Kinds lists every supported Kind in route registration order.
var Kinds = []Kind{KindRoleFeatures, KindRolePermissions, KindUserRoles, KindFeaturePermissions}

type Op string

const (
	OpAssign           Op = "assign"
	OpUnassign         Op = "unassign"
	OpAssignSelected   Op = "assign_selected"
	OpUnassignSelected Op = "unassign_selected"
	OpAssignAll        Op = "assign_all"
	OpUnassignAll      Op = "unassign_all"
)

// Command is one user action on the assignment screen.
// Assign and Unassign use the first ID; the *_selected ops use all of them; the *_all ops ignore IDs.
type Command struct {
	Op  Op      `json:"op" binding:"required,oneof=assign unassign assign_selected unassign_selected assign_all unassign_all"`
	IDs []int64 `json:"ids"`
}
