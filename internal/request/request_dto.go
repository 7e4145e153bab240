package request

type CreateVacationRequest struct {
	UserID    int    `json:"user_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status   string  `json:"status" binding:"required,oneof=Pending Approved Rejected"`
	Comments *string `json:"comments"`
}

type VacationRequestResponse struct {
	ID        int     `json:"id"`
	UserID    int     `json:"user_id"`
	UserName  string  `json:"user_name,omitempty"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	TotalDays int     `json:"total_days"`
	Reason    string  `json:"reason,omitempty"`
	Status    string  `json:"status"`
	Comments  *string `json:"comments,omitempty"`
	CreatedAt string  `json:"created_at"`
}
