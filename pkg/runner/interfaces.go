package runner

import (
	"testing"

	"github.com/denizgursoy/kesit/pkg/kesit"
)

// TestingT is the part of *testing.T the runner drives. Subtests are created
// through Run, and the summary is printed from a Cleanup function.
type TestingT interface {
	kesit.T
	Run(name string, f func(t *testing.T)) bool
	Cleanup(f func())
}
