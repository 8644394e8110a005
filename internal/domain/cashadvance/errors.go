package cashadvance

import "errors"

var (
	ErrAdvanceNotFound    = errors.New("cash advance request not found")
	ErrAlreadyDecided     = errors.New("cash advance request already decided")
	ErrAdvanceNotApproved = errors.New("cash advance request is not approved")
)
