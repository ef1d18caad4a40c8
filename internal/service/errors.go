package service

import "errors"

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrValidationNoUserIDProvided = errors.New("no user id provided")
)
