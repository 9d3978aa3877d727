package class

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/typedclass/pkg/domain"
)

// ShapeError reports positional arguments passed to a keyword-only constructor.
type ShapeError struct {
	Structure string
	Count     int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s takes no positional arguments (%d given)", e.Structure, e.Count)
}

// Is reports whether target is domain.ErrInvalidArgumentShape.
func (e *ShapeError) Is(target error) bool {
	return target == domain.ErrInvalidArgumentShape
}

// MissingFieldsError lists every required field absent from the arguments.
type MissingFieldsError struct {
	Structure string
	Names     []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s is missing required fields %s", e.Structure, quoteAll(e.Names))
}

// Is reports whether target is domain.ErrMissingRequiredFields.
func (e *MissingFieldsError) Is(target error) bool {
	return target == domain.ErrMissingRequiredFields
}

// UnexpectedFieldsError lists every argument that matches no declared field.
type UnexpectedFieldsError struct {
	Structure string
	Names     []string
}

func (e *UnexpectedFieldsError) Error() string {
	return fmt.Sprintf("%s got unexpected fields %s", e.Structure, quoteAll(e.Names))
}

// Is reports whether target is domain.ErrUnexpectedFields.
func (e *UnexpectedFieldsError) Is(target error) bool {
	return target == domain.ErrUnexpectedFields
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}
	return strings.Join(quoted, ", ")
}
