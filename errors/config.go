package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// configError is implemented by every error caused by an invalid specification or
// featureset configuration, as opposed to a failure inside a dataframe engine.
type configError interface {
	error
	isConfigError()
}

// InvalidSpecError occurs when a nested field specification is malformed
type InvalidSpecError struct{ Reason string }

// Error returns a textual representation of this InvalidSpecError
func (e InvalidSpecError) Error() string {
	return fmt.Sprintf("Invalid field specification: %s", e.Reason)
}

func (e InvalidSpecError) isConfigError() {}

// EmptyFeaturesetError occurs when a featureset's variables resolve to no fields at all
type EmptyFeaturesetError struct{ Featureset string }

// Error returns a textual representation of this EmptyFeaturesetError
func (e EmptyFeaturesetError) Error() string {
	return fmt.Sprintf("Featureset %s does not select any fields", e.Featureset)
}

func (e EmptyFeaturesetError) isConfigError() {}

// ColumnCollisionError occurs when two generated or index columns would share a name
type ColumnCollisionError struct {
	Featureset string
	Name       string
}

// Error returns a textual representation of this ColumnCollisionError
func (e ColumnCollisionError) Error() string {
	if e.Featureset == "" {
		return fmt.Sprintf("Column %s is defined more than once", e.Name)
	}
	return fmt.Sprintf("Column %s of featureset %s collides with an existing column", e.Name, e.Featureset)
}

func (e ColumnCollisionError) isConfigError() {}

// MissingColumnError occurs when a configured column or variable cannot be found in its source
type MissingColumnError struct {
	Featureset string
	Name       string
}

// Error returns a textual representation of this MissingColumnError
func (e MissingColumnError) Error() string {
	if e.Featureset == "" {
		return fmt.Sprintf("Expected column %s is missing", e.Name)
	}
	return fmt.Sprintf("Expected column %s is missing from featureset %s", e.Name, e.Featureset)
}

func (e MissingColumnError) isConfigError() {}

// IsConfigError returns true iff err is, wraps, or aggregates a configuration error
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var merr *multierror.Error
	if stderrors.As(err, &merr) {
		for _, e := range merr.Errors {
			if IsConfigError(e) {
				return true
			}
		}
		return false
	}
	var cerr configError
	return stderrors.As(err, &cerr)
}
