/*
Package domain holds the error taxonomy shared by every typedclass package.

Callers classify failures with errors.Is against these sentinels, whichever layer
produced them (constraint parsing, structure declaration, construction, registries).

# Construction failures

  - ErrInvalidArgumentShape: positional arguments were supplied.
  - ErrTypeMismatch: a value does not satisfy its field's constraint.
  - ErrMissingRequiredFields: one or more required fields were not supplied.
  - ErrUnexpectedFields: arguments name fields the structure does not declare.
*/
package domain
