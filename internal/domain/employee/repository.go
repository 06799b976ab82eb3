package employee

import "context"

// EmployeeRepository is backed by the HRMS REST API; the backend owns
// persistence and cascades deletes to attendance records.
type EmployeeRepository interface {
	List(ctx context.Context) (ListEmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, employeeID string) error
}
