package testdata

import "github.com/denizgursoy/kesit/pkg/kesit"

// @kesit
func sample(ctx *kesit.Context) {}
