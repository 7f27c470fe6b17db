package kesit

import (
	"fmt"
	"reflect"
)

type (
	// Preparer is implemented by fixtures built through a fallible preparation.
	// Nothing is torn down after the body; release resources with t.Cleanup or
	// by other means owned by the fixture.
	Preparer interface {
		Prepare() error
	}

	// SetUpper and TearDowner are implemented by zero-value constructible
	// fixtures. SetUp runs right before the body and TearDown right after it.
	SetUpper interface {
		SetUp()
	}
	TearDowner interface {
		TearDown()
	}

	// Body is the invocable body of one generated case.
	Body func(ctx *Context) error

	// FixtureError reports a failed Prepare. The case is aborted without
	// running its body.
	FixtureError struct {
		Fixture string
		Err     error
	}
)

func (e *FixtureError) Error() string {
	return fmt.Sprintf("fixture %s: prepare failed: %v", e.Fixture, e.Err)
}

func (e *FixtureError) Unwrap() error {
	return e.Err
}

// WithFixture wraps a body that takes a fixture of type F. The fixture is
// prepared for every call, so cases never share one.
func WithFixture[F any](body func(ctx *Context, fixture *F) error) Body {
	return func(ctx *Context) error {
		fixture, release, err := PrepareFixture[F]()
		if err != nil {
			ctx.Logger().Error("fixture preparation failed", "test", ctx.Test(), "error", err)
			return err
		}
		defer release()
		ctx.Logger().Debug("fixture ready", "test", ctx.Test(), "fixture", fixtureName[F]())
		return body(ctx, fixture)
	}
}

// PrepareFixture builds a fixture of type F. The returned release function
// must be called once the body returns.
func PrepareFixture[F any]() (*F, func(), error) {
	fixture := new(F)
	if preparer, ok := any(fixture).(Preparer); ok {
		if err := preparer.Prepare(); err != nil {
			return nil, nil, &FixtureError{Fixture: fixtureName[F](), Err: err}
		}
		return fixture, func() {}, nil
	}

	if setUpper, ok := any(fixture).(SetUpper); ok {
		setUpper.SetUp()
	}
	release := func() {
		if tearDowner, ok := any(fixture).(TearDowner); ok {
			tearDowner.TearDown()
		}
	}
	return fixture, release, nil
}

func fixtureName[F any]() string {
	return reflect.TypeFor[F]().String()
}
