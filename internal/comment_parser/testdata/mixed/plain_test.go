package mixed_test

import "testing"

func TestNothing(t *testing.T) {}
