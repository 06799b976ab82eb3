package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees returns the directory; errors surface to the page
	ListEmployees(ctx context.Context) (ListEmployeeResponse, error)

	// SelectorOptions returns employees for a dropdown, empty on failure
	SelectorOptions(ctx context.Context) []Employee

	// CreateEmployee validates locally, then creates through the backend
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (Employee, error)

	// DeleteEmployee deletes the employee and, server-side, its attendance
	DeleteEmployee(ctx context.Context, employeeID string) error
}
