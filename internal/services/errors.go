package services

import "errors"

var (
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")
	ErrDuplicateOrder        = errors.New("questionnaire already exists for order")
	ErrInvalidInput          = errors.New("invalid input")
	ErrModelResponseInvalid  = errors.New("failed to parse model recommendations")
)
