package service

import "errors"

// Domain errors surfaced by the assessment services. Controllers map these to
// HTTP statuses with errors.Is.
var (
	// ErrNotFound: no curriculum, quiz, pretest or attempt exists for the
	// requested scope. Recoverable by generating first.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSubmission: a main weekly quiz was submitted a second time
	// for the same (student, course, week). Permanently rejected.
	ErrDuplicateSubmission = errors.New("main quiz can only be taken once per week")

	// ErrScopeMismatch: the submitted quiz/pretest id does not match the
	// stored current one for that scope.
	ErrScopeMismatch = errors.New("submitted id does not match the current question set for this scope")

	// ErrEmptyFocusSet: dynamic quiz generation was requested for a week with
	// no resolvable topics. Rejected before calling the generator.
	ErrEmptyFocusSet = errors.New("no topics available to focus a dynamic quiz on")
)
