package hidden

import "github.com/denizgursoy/kesit/pkg/kesit"

// @kesit
func sample(ctx *kesit.Context) {}
