package mixed_test

import "github.com/denizgursoy/kesit/pkg/kesit"

// @kesit
func two(ctx *kesit.Context) {}
