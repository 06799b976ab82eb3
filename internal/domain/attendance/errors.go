package attendance

import "errors"

// Attendance domain errors
var (
	ErrRowBusy       = errors.New("attendance for this employee is already being saved")
	ErrBulkInFlight  = errors.New("a bulk update is already in progress")
	ErrEmptyFilter   = errors.New("set a start or end date to filter")
	ErrNoEmployee    = errors.New("select an employee first")
	ErrFutureDate    = errors.New("date cannot be in the future")
	ErrInvalidStatus = errors.New("status must be Present or Absent")
)
