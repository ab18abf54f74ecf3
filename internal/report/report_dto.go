package report

type LeaveTypeUsage struct {
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	ApprovedDays  string `json:"approved_days"`
}

type SummaryResponse struct {
	Year            int              `json:"year"`
	DepartmentID    string           `json:"department_id,omitempty"`
	ActiveUsers     int64            `json:"active_users"`
	Departments     int64            `json:"departments"`
	PendingCount    int64            `json:"pending_count"`
	ApprovedCount   int64            `json:"approved_count"`
	RejectedCount   int64            `json:"rejected_count"`
	UsageByType     []LeaveTypeUsage `json:"usage_by_type"`
	GeneratedAtUnix int64            `json:"generated_at"`
}
