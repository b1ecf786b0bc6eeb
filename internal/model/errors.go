package model

import "errors"

var (
	// ErrNoDeadline is returned when reminder generation is requested for a
	// task that has no deadline set.
	ErrNoDeadline = errors.New("task has no deadline")

	ErrTaskNotFound     = errors.New("task not found")
	ErrReminderNotFound = errors.New("reminder not found")

	// ErrFireAtInPast rejects creating or moving a reminder to an instant
	// that is not strictly in the future.
	ErrFireAtInPast = errors.New("fire_at must be in the future")
)
