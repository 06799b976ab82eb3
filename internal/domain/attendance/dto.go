package attendance

import (
	"strings"

	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/validator"
	"github.com/goccy/go-json"
)

// MarkAttendanceRequest upserts a single (employee_id, date) record.
type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     Status `json:"status"`
}

// Validate checks the request against today (YYYY-MM-DD in the app timezone).
func (r *MarkAttendanceRequest) Validate(today string) error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "Please select an employee",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "Date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else if r.Date > today {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "Date cannot be in the future",
		})
	}

	if r.Status == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "Status is required",
		})
	} else if !validator.IsInSlice(string(r.Status), Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Present, Absent",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkAttendanceRequest struct {
	Records []MarkAttendanceRequest `json:"records"`
}

// BulkAttendanceResponse mirrors the backend's bulk upsert result. The
// shape of "failed" is not pinned down by the backend (count or list), so it
// is kept raw and read through FailedCount.
type BulkAttendanceResponse struct {
	Success int             `json:"success"`
	Failed  json.RawMessage `json:"failed,omitempty"`
	Results []Record        `json:"results,omitempty"`
}

func (r BulkAttendanceResponse) FailedCount() int {
	if len(r.Failed) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(r.Failed, &n); err == nil {
		return n
	}
	var list []json.RawMessage
	if err := json.Unmarshal(r.Failed, &list); err == nil {
		return len(list)
	}
	return 0
}

type ListAttendanceResponse struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}

// HistoryFilter is the optional inclusive date range of the history view.
type HistoryFilter struct {
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
}

func (f HistoryFilter) IsEmpty() bool {
	return f.DateFrom == "" && f.DateTo == ""
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	f.DateFrom = strings.TrimSpace(f.DateFrom)
	f.DateTo = strings.TrimSpace(f.DateTo)

	if f.DateFrom != "" {
		if _, valid := validator.IsValidDate(f.DateFrom); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "date_from must be in YYYY-MM-DD format",
			})
		}
	}

	if f.DateTo != "" {
		if _, valid := validator.IsValidDate(f.DateTo); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_to",
				Message: "date_to must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) == 0 && f.DateFrom != "" && f.DateTo != "" && f.DateFrom > f.DateTo {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must not be before date_from",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
