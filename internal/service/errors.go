// Package service implements the application's business logic on top of the
// storage layer and the pure ledger engine.
package service

import "errors"

var (
	// ErrNotMember means the acting user has no active membership in the
	// target group.
	ErrNotMember = errors.New("not an active member of this group")

	// ErrAdminRequired means the operation needs the admin role.
	ErrAdminRequired = errors.New("group admin role required")

	// ErrUnknownParticipant means an expense or payment references a uid
	// with no membership row in the group.
	ErrUnknownParticipant = errors.New("participant is not a member of this group")

	// ErrInvalidPayment means a payment violated amount > 0 or from != to.
	ErrInvalidPayment = errors.New("payment must transfer a positive amount between two distinct members")

	// ErrUserNotFound means a referenced user account does not exist.
	ErrUserNotFound = errors.New("user not found")
)
