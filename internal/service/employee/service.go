package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/refresh"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	notifier     refresh.Publisher
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, notifier refresh.Publisher) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		notifier:     notifier,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) (employee.ListEmployeeResponse, error) {
	resp, err := s.employeeRepo.List(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to list employees", "error", err)
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}
	return resp, nil
}

// SelectorOptions implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SelectorOptions(ctx context.Context) []employee.Employee {
	resp, err := s.employeeRepo.List(ctx)
	if err != nil {
		slog.DebugContext(ctx, "Employee selector prefetch failed", "error", err)
		return []employee.Employee{}
	}
	return resp.Employees
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	created, err := s.employeeRepo.Create(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "Failed to create employee", "employee_id", req.EmployeeID, "error", err)
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.InfoContext(ctx, "Employee created", "employee_id", created.EmployeeID)
	s.notifier.Invalidate(refresh.EmployeesChanged()...)
	return created, nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, employeeID string) error {
	employeeID = strings.TrimSpace(employeeID)
	if validator.IsEmpty(employeeID) {
		return validator.ValidationErrors{{Field: "employee_id", Message: "Employee ID is required"}}
	}

	if err := s.employeeRepo.Delete(ctx, employeeID); err != nil {
		slog.WarnContext(ctx, "Failed to delete employee", "employee_id", employeeID, "error", err)
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	slog.InfoContext(ctx, "Employee deleted", "employee_id", employeeID)
	s.notifier.Invalidate(refresh.EmployeesChanged()...)
	return nil
}
