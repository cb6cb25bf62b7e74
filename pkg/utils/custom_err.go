package utils

import "errors"

// Service-level sentinel errors. Controllers map these to HTTP responses in
// HandleServiceError; nothing below ever carries a stack trace to the client.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrExerciseNotFound   = errors.New("exercise not found")
	ErrPlanNotFound       = errors.New("workout plan not found")
	ErrSessionNotFound    = errors.New("training session not found")
	ErrDatabaseError      = errors.New("database error")
)

// Generation pipeline errors.
var (
	// ErrExtraction: no JSON object could be located in the model output.
	ErrExtraction = errors.New("no JSON object found in model output")
	// ErrDecode: text was extracted but is not valid JSON after repair.
	ErrDecode = errors.New("extracted text is not valid JSON")
	// ErrSchemaValidation: parsed plan violates the structural schema.
	ErrSchemaValidation = errors.New("plan failed schema validation")
	// ErrDistribution: day-count/type mix violates the distribution policy.
	ErrDistribution = errors.New("plan day distribution out of policy")
	// ErrUpstreamService: LLM or video API unreachable or non-2xx.
	ErrUpstreamService = errors.New("upstream service error")
	// ErrPersistence: plan write failed.
	ErrPersistence = errors.New("plan persistence failed")
)
