package balance

type BalanceResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name,omitempty"`
	Year          int    `json:"year"`
	TotalDays     string `json:"total_days"`
	UsedDays      string `json:"used_days"`
	PendingDays   string `json:"pending_days"`
	CarriedDays   string `json:"carried_days"`
	AvailableDays string `json:"available_days"`
}

type RolloverRequest struct {
	FromYear int `json:"from_year" binding:"required,min=2000,max=2200"`
}

type RolloverResponse struct {
	FromYear int `json:"from_year"`
	ToYear   int `json:"to_year"`
	Created  int `json:"created"`
	Skipped  int `json:"skipped"`
}
