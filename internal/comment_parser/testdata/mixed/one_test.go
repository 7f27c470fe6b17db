package mixed

import "github.com/denizgursoy/kesit/pkg/kesit"

// @kesit
func one(ctx *kesit.Context) {}
