package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyClosed = errors.New("month already closed")
	ErrStore         = errors.New("store failure")
)

// PartialSettlementError reports that a month's snapshot was persisted but
// flagging its expenses failed afterwards. The month is closed, yet its
// expenses remain editable; callers must surface this rather than treat it
// as an ordinary store failure.
type PartialSettlementError struct {
	MonthYear string
	Err       error
}

func (e *PartialSettlementError) Error() string {
	return fmt.Sprintf("month %s closed but expense flags not updated: %v", e.MonthYear, e.Err)
}

func (e *PartialSettlementError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStore, op, err)
}
