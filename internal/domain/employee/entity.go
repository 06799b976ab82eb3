package employee

import (
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/clock"
)

type Employee struct {
	ID         int             `json:"id"`
	EmployeeID string          `json:"employee_id"`
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	Department string          `json:"department"`
	CreatedAt  clock.Timestamp `json:"created_at"`
	UpdatedAt  clock.Timestamp `json:"updated_at"`
}

type Department string

const (
	DepartmentEngineering    Department = "Engineering"
	DepartmentMarketing      Department = "Marketing"
	DepartmentSales          Department = "Sales"
	DepartmentHumanResources Department = "Human Resources"
	DepartmentFinance        Department = "Finance"
	DepartmentOperations     Department = "Operations"
	DepartmentDesign         Department = "Design"
	DepartmentProduct        Department = "Product"
)

// Departments is the fixed list offered by the create form, in display order.
var Departments = []Department{
	DepartmentEngineering,
	DepartmentMarketing,
	DepartmentSales,
	DepartmentHumanResources,
	DepartmentFinance,
	DepartmentOperations,
	DepartmentDesign,
	DepartmentProduct,
}

func (d Department) IsValid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}
