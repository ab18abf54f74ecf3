package leavetype

type CreateLeaveTypeRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	DefaultDays  float64 `json:"default_days" binding:"min=0"`
	Color        string  `json:"color"`
	CarryForward bool    `json:"carry_forward"`
	MaxCarryDays float64 `json:"max_carry_days" binding:"min=0"`
}

type UpdateLeaveTypeRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	DefaultDays  float64 `json:"default_days" binding:"min=0"`
	Color        string  `json:"color"`
	CarryForward bool    `json:"carry_forward"`
	MaxCarryDays float64 `json:"max_carry_days" binding:"min=0"`
	IsActive     *bool   `json:"is_active"`
}

type LeaveTypeResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	DefaultDays  string `json:"default_days"`
	Color        string `json:"color"`
	CarryForward bool   `json:"carry_forward"`
	MaxCarryDays string `json:"max_carry_days"`
	IsActive     bool   `json:"is_active"`
}
