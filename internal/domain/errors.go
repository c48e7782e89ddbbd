package domain

import "errors"

var (
	// ErrInvalidInviteCode is returned when a code does not match any unused record.
	ErrInvalidInviteCode = errors.New("invalid or already used invite code")
	// ErrNoQuestions is returned when the quiz would start with an empty question bank.
	ErrNoQuestions = errors.New("quiz has no questions yet")
	// ErrInvalidAdminCredentials is returned on a failed admin login.
	ErrInvalidAdminCredentials = errors.New("invalid admin credentials")
	// ErrAdminRequired guards admin-only operations.
	ErrAdminRequired = errors.New("admin session required")
	// ErrQuizNotFound indicates the question bank could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates an edit referenced an unknown question ID.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInvalidQuestion wraps question validation failures.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrInvalidSettings indicates an end time before the start time.
	ErrInvalidSettings = errors.New("quiz end time must be after start time")
	// ErrMalformedData is returned by stores whose persisted data cannot be decoded.
	ErrMalformedData = errors.New("malformed persisted data")
	// ErrCodeSpaceExhausted is returned when no unique invite code could be drawn.
	ErrCodeSpaceExhausted = errors.New("could not generate a unique invite code")
)
