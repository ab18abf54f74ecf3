package holiday

type CreateHolidayRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Date        string `json:"date" binding:"required"`
	IsRecurring bool   `json:"is_recurring"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	IsRecurring bool   `json:"is_recurring"`
}
