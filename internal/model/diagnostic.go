package model

import (
	"errors"
	"fmt"
	"go/token"
)

var (
	ErrUnknownParameter       = errors.New("unknown parameter")
	ErrUnboundParameter       = errors.New("unbound parameter")
	ErrDuplicateParameter     = errors.New("duplicate parameter")
	ErrDuplicateFixture       = errors.New("duplicate fixture")
	ErrMissingFixtureArgument = errors.New("missing fixture argument")
	ErrConditionalSection     = errors.New("conditional section")
	ErrMalformedSection       = errors.New("malformed section")
	ErrInvalidDirective       = errors.New("invalid directive")
	ErrInvalidSignature       = errors.New("invalid signature")
	ErrEmptyAxis              = errors.New("empty axis")
	ErrNotConstant            = errors.New("not a constant expression")
)

// Diagnostic is a validation error pinned to a source position.
type Diagnostic struct {
	Pos     token.Position
	Test    string
	Kind    error
	Message string
}

func (d *Diagnostic) Error() string {
	if d.Test == "" {
		return fmt.Sprintf("%s: %s", d.Pos, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Test, d.Message)
}

func (d *Diagnostic) Unwrap() error {
	return d.Kind
}

// Errorf builds a Diagnostic of the given kind.
func Errorf(pos token.Position, test string, kind error, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Pos:     pos,
		Test:    test,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
