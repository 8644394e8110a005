package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrAlreadyDecided       = errors.New("leave request has already been approved or rejected")
)
