package interview

import "errors"

// Contract errors returned by orchestrator operations. Backend failures are
// never surfaced through these; they are substituted with fallback content.
var (
	// ErrInterviewNotFound is returned when the interview ID matches no record.
	ErrInterviewNotFound = errors.New("interview not found")

	// ErrInterviewFinished is returned when a mutation targets an interview
	// that is already in a terminal state.
	ErrInterviewFinished = errors.New("interview already finished")

	// ErrQuestionNotFound is returned when an answer references an unknown
	// question.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrQuestionAlreadyAnswered is returned when a question already has an
	// answer recorded for the interview.
	ErrQuestionAlreadyAnswered = errors.New("question already answered")

	// ErrInterviewFull is returned when an answer is submitted after the
	// question limit has been reached.
	ErrInterviewFull = errors.New("interview question limit reached")
)
