package employee

import (
	"testing"

	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		EmployeeID: "EMP-001",
		FullName:   "John Doe",
		Email:      "john@company.com",
		Department: string(DepartmentEngineering),
	}
}

func TestCreateEmployeeRequest_Validate_Success(t *testing.T) {
	req := validCreateRequest()
	assert.NoError(t, req.Validate())
}

func TestCreateEmployeeRequest_Validate_AllDepartments(t *testing.T) {
	for _, d := range Departments {
		req := validCreateRequest()
		req.Department = string(d)
		assert.NoError(t, req.Validate(), "department %q should be accepted", d)
		assert.True(t, d.IsValid())
	}
	assert.False(t, Department("Legal").IsValid())
}

func TestCreateEmployeeRequest_Validate_EmptyEmployeeID(t *testing.T) {
	req := validCreateRequest()
	req.EmployeeID = "   "

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Employee ID is required", errs.ToMap()["employee_id"])
}

func TestCreateEmployeeRequest_Validate_FieldScoped(t *testing.T) {
	req := CreateEmployeeRequest{
		EmployeeID: "EMP 001",
		FullName:   "",
		Email:      "not-an-email",
		Department: "Legal",
	}

	err := req.Validate()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	got := errs.ToMap()
	assert.Equal(t, "Only letters, numbers, and hyphens allowed", got["employee_id"])
	assert.Equal(t, "Full name is required", got["full_name"])
	assert.Equal(t, "Enter a valid email address", got["email"])
	assert.Equal(t, "Select a department from the list", got["department"])
}

func TestCreateEmployeeRequest_Normalize(t *testing.T) {
	req := CreateEmployeeRequest{
		EmployeeID: "  EMP-9 ",
		FullName:   " José ",
		Email:      " jose@company.com ",
		Department: " Sales ",
	}
	require.NoError(t, req.Validate())

	assert.Equal(t, "EMP-9", req.EmployeeID)
	assert.Equal(t, "José", req.FullName)
	assert.Equal(t, "jose@company.com", req.Email)
	assert.Equal(t, "Sales", req.Department)
}

func TestCreateEmployeeRequest_Validate_TooLong(t *testing.T) {
	req := validCreateRequest()
	req.EmployeeID = "ABCDEFGHIJ-1234567890"

	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	assert.Equal(t, "Employee ID must be at most 20 characters", errs.ToMap()["employee_id"])
}
