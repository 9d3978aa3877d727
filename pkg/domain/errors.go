package domain

import "errors"

// ErrInvalidArgumentShape is returned when positional arguments are supplied to a keyword-only constructor.
var ErrInvalidArgumentShape = errors.New("invalid argument shape")

// ErrTypeMismatch is returned when a supplied value does not satisfy its field's constraint.
var ErrTypeMismatch = errors.New("type mismatch")

// ErrMissingRequiredFields is returned when required fields are absent from the supplied arguments.
var ErrMissingRequiredFields = errors.New("missing required fields")

// ErrUnexpectedFields is returned when arguments do not correspond to any declared field.
var ErrUnexpectedFields = errors.New("unexpected fields")

// ErrUnknownStructure is returned when a structure name cannot be found in a registry.
var ErrUnknownStructure = errors.New("unknown structure")

// ErrInvalidConstraint is returned when a constraint expression cannot be parsed or resolved.
var ErrInvalidConstraint = errors.New("invalid constraint")

// ErrInvalidDefinition is returned when a structure definition is malformed.
var ErrInvalidDefinition = errors.New("invalid structure definition")
