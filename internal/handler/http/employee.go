package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/view"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/refresh"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	Page(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
	pages           *Pages
}

func NewEmployeeHandler(employeeService employee.EmployeeService, pages *Pages) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService, pages: pages}
}

// Page handles GET /employees
func (h *employeeHandlerImpl) Page(w http.ResponseWriter, r *http.Request) {
	data := view.EmployeesPage{Departments: employee.Departments}
	list, err := h.employeeService.ListEmployees(r.Context())
	if err != nil {
		data.Error = response.Message(err)
	} else {
		data.Employees = list.Employees
		data.Total = list.Total
	}

	h.pages.render(w, r, "employees", "Employees", []refresh.Topic{refresh.TopicEmployees}, data)
}

// ListEmployees handles GET /ui/api/employees
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.employeeService.ListEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// CreateEmployee handles POST /ui/api/employees
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee added successfully", created)
}

// DeleteEmployee handles DELETE /ui/api/employees/{employeeID}
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "employeeID")
	if err := h.employeeService.DeleteEmployee(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}
