package leaverequest

type SubmitLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	HalfDay     bool   `json:"half_day"`
	Reason      string `json:"reason" binding:"required"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

type ListFilter struct {
	Status       string
	UserID       string
	DepartmentID string
}

type LeaveRequestResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	LeaveTypeID     string  `json:"leave_type_id"`
	DepartmentID    *string `json:"department_id,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       string  `json:"total_days"`
	HalfDay         bool    `json:"half_day"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	CancelledAt     *string `json:"cancelled_at,omitempty"`
	AppliedAt       string  `json:"applied_at"`
}
