package slugs

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrPeerFinderRequired      = errors.New("slugs: peer finder required")
	ErrRecordRequired          = errors.New("slugs: record required")
	ErrMethodNotCallable       = errors.New("slugs: method is not callable nor nil")
	ErrReservedInvalid         = errors.New("slugs: reserved is not nil, a list, or a function that returns nil/list")
	ErrUniqueSuffixNotCallable = errors.New("slugs: uniqueSuffix is not callable nor nil")
	ErrConfigNotMapping        = errors.New("slugs: config must be nil or an options mapping")
	ErrOptionInvalid           = errors.New("slugs: option value has an unsupported type")
)

const configErrorTextCode = "SLUG_CONFIG_INVALID"

// ConfigError reports a misconfigured slug option for a record type and
// attribute. It wraps one of the option sentinels above.
type ConfigError struct {
	TypeName  string
	Attribute string
	Option    string
	Err       error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("sluggable %q for %s:%s: %v", e.Option, e.TypeName, e.Attribute, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func newConfigError(typeName, attribute, option string, err error) error {
	return &ConfigError{
		TypeName:  typeName,
		Attribute: attribute,
		Option:    option,
		Err:       err,
	}
}

// IsConfigError reports whether err carries a *ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// AsValidationError tags configuration errors with the go-errors validation
// category so transport layers can map them consistently. Other errors are
// returned untouched.
func AsValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) || !IsConfigError(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "slug configuration invalid").
		WithTextCode(configErrorTextCode)
}
