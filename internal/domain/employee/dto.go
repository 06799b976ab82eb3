package employee

import (
	"strings"

	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/validator"
	"golang.org/x/text/unicode/norm"
)

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,max=20,employee_id"`
	FullName   string `json:"full_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email_address"`
	Department string `json:"department" validate:"required,oneof=Engineering Marketing Sales 'Human Resources' Finance Operations Design Product"`
}

var createEmployeeMessages = map[string]string{
	"employee_id.required":    "Employee ID is required",
	"employee_id.max":         "Employee ID must be at most 20 characters",
	"employee_id.employee_id": "Only letters, numbers, and hyphens allowed",
	"full_name.required":      "Full name is required",
	"full_name.max":           "Full name must be at most 100 characters",
	"email.required":          "Email is required",
	"email.email_address":     "Enter a valid email address",
	"department.required":     "Department is required",
	"department.oneof":        "Select a department from the list",
}

// Normalize trims every field and NFC-normalizes the free-text name so the
// payload sent to the backend matches what the user sees.
func (r *CreateEmployeeRequest) Normalize() {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.FullName = norm.NFC.String(strings.TrimSpace(r.FullName))
	r.Email = strings.TrimSpace(r.Email)
	r.Department = strings.TrimSpace(r.Department)
}

func (r *CreateEmployeeRequest) Validate() error {
	r.Normalize()
	return validator.Struct(r, createEmployeeMessages)
}

type ListEmployeeResponse struct {
	Employees []Employee `json:"employees"`
	Total     int        `json:"total"`
}

type DeleteEmployeeResponse struct {
	Message string `json:"message"`
}
