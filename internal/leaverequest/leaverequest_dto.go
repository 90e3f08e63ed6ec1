package leaverequest

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=ANNUAL SICK UNPAID MATERNITY"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type AdminListFilter struct {
	OrganizationID string `form:"organization"`
	Limit          int    `form:"limit"`
}

type LeaveRequestResponse struct {
	ID             string `json:"id"`
	RequestNumber  string `json:"request_number"`
	OrganizationID string `json:"organization_id"`
	CreatedBy      string `json:"created_by"`
	FullName       string `json:"full_name"`
	LeaveType      string `json:"leave_type"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Reason         string `json:"reason"`
	HodStatus      string `json:"hod_status"`
	HrStatus       string `json:"hr_status"`
	CeoStatus      string `json:"ceo_status"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

// ExportRow is the flat projection consumed by CSV export and the admin
// table. Column order follows the export file layout.
type ExportRow struct {
	FullName     string
	LeaveType    string
	StartDate    string
	EndDate      string
	Reason       string
	Status       string
	HodStatus    string
	HrStatus     string
	CeoStatus    string
	Organization string
	CreatedBy    string
	CreatedAt    string
}

func ExportHeader() []string {
	return []string{
		"FullName", "LeaveType", "StartDate", "EndDate", "Reason",
		"Status", "HodStatus", "HrStatus", "CeoStatus",
		"Organization", "CreatedBy", "CreatedAt",
	}
}

func (r ExportRow) Record() []string {
	return []string{
		r.FullName, r.LeaveType, r.StartDate, r.EndDate, r.Reason,
		r.Status, r.HodStatus, r.HrStatus, r.CeoStatus,
		r.Organization, r.CreatedBy, r.CreatedAt,
	}
}
