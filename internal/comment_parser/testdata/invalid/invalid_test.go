package invalid

import "github.com/denizgursoy/kesit/pkg/kesit"

// @kesit repeat = 3
func repeated(ctx *kesit.Context) {}

// @kesit parameter = n as 5
func unbracketed(n int) {}

// @kesit parameter = n as [1, 2]
func counted(n int) {}
