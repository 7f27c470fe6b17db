package basic

// @kesit
func notMatchedByPattern(ctx *kesit.Context) {}
