package restapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	client *Client
}

func NewEmployeeRepository(client *Client) employee.EmployeeRepository {
	return &employeeRepositoryImpl{client: client}
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) (employee.ListEmployeeResponse, error) {
	var resp employee.ListEmployeeResponse
	if err := r.client.do(ctx, http.MethodGet, "/api/employees", nil, nil, &resp); err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	if resp.Employees == nil {
		resp.Employees = []employee.Employee{}
	}
	return resp, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	var created employee.Employee
	if err := r.client.do(ctx, http.MethodPost, "/api/employees", nil, req, &created); err != nil {
		return employee.Employee{}, withSentinel(err, http.StatusConflict, employee.ErrEmployeeExists)
	}
	return created, nil
}

// Delete implements employee.EmployeeRepository. The confirmation body is
// not needed, so any 2xx counts, empty or not.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, employeeID string) error {
	err := r.client.do(ctx, http.MethodDelete, "/api/employees/"+url.PathEscape(employeeID), nil, nil, nil)
	return withSentinel(err, http.StatusNotFound, employee.ErrEmployeeNotFound)
}
