package permission

type CreatePermissionRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Code        string  `json:"code" binding:"required,max=100"`
	Action      *string `json:"action" binding:"omitempty,max=50"`
	Resource    *string `json:"resource" binding:"omitempty,max=50"`
	Description *string `json:"description" binding:"omitempty,max=255"`
	IsActive    *bool   `json:"isActive"`
	FeatureID   *int64  `json:"featureId" binding:"omitempty,gt=0"`
}

type UpdatePermissionRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Code        string  `json:"code" binding:"required,max=100"`
	Action      *string `json:"action" binding:"omitempty,max=50"`
	Resource    *string `json:"resource" binding:"omitempty,max=50"`
	Description *string `json:"description" binding:"omitempty,max=255"`
	IsActive    *bool   `json:"isActive"`
	FeatureID   *int64  `json:"featureId" binding:"omitempty,gt=0"`
}

// TemplateRequest selects actions from a resource template: SelectedActions first, then Ops in
// order. Only Resource and the resolved SelectedActions are sent to the platform's bulk-create endpoint.
type TemplateRequest struct {
	Resource        string        `json:"resource" binding:"required"`
	SelectedActions []string      `json:"selectedActions" binding:"omitempty,dive,required"`
	Ops             []SelectionOp `json:"ops,omitempty" binding:"omitempty,dive"`
}

func (r TemplateRequest) empty() bool {
	return len(r.SelectedActions) == 0 && len(r.Ops) == 0
}

// Selection ops, applied in order on top of SelectedActions.
const (
	OpToggle      = "toggle"
	OpSelect      = "select"
	OpDeselect    = "deselect"
	OpSelectAll   = "select_all"
	OpDeselectAll = "deselect_all"
)

type SelectionOp struct {
	Op     string `json:"op" binding:"required,oneof=toggle select deselect select_all deselect_all"`
	Action string `json:"action,omitempty" binding:"omitempty,max=50"`
}

type PreviewResponse struct {
	Resource        string           `json:"resource"`
	SelectedActions []string         `json:"selectedActions"`
	Candidates      []TemplateAction `json:"candidates"`
}
