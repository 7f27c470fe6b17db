//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=generator
package generator

import (
	"context"

	"github.com/denizgursoy/kesit/internal/model"
)

type (
	SourceParser interface {
		Directories(root, pattern string) ([]string, error)
		ParseDirectory(ctx context.Context, dir, pattern string) (*model.Suite, error)
	}
)
