package archon

import (
	"errors"
	"fmt"
)

// Error taxonomy, per spec §7. Callers use errors.Is / errors.As against
// the sentinels; wrapped errors carry the offending value for logging.
var (
	ErrFileIO              = errors.New("archon: file i/o error")
	ErrParse               = errors.New("archon: parse error")
	ErrSchema              = errors.New("archon: schema error")
	ErrInvariantViolation  = errors.New("archon: invariant violation")
	ErrInvalidId           = errors.New("archon: invalid id")
	ErrCommandRejected     = errors.New("archon: command rejected")
	ErrDeterminismMismatch = errors.New("archon: determinism mismatch")
	ErrVersionIncompatible = errors.New("archon: save version incompatible")
)

// InvalidProvinceId reports a ProvinceId that does not exist.
func InvalidProvinceId(id ProvinceId) error {
	return fmt.Errorf("%w: %s", ErrInvalidId, id)
}

// InvalidCountryId reports a CountryId that does not exist.
func InvalidCountryId(id CountryId) error {
	return fmt.Errorf("%w: %s", ErrInvalidId, id)
}

// CommandRejected wraps a validation-failure reason for a rejected command.
func CommandRejected(reason string) error {
	return fmt.Errorf("%w: %s", ErrCommandRejected, reason)
}
