// Package matrix expands parameter axes into the Cartesian product of bindings.
//
// Ordering contract: within one group the axes are digits of a mixed-radix
// counter and the LAST axis varies fastest, the same order as nested loops
// written in axis order. Groups are combined the same way with type axes most
// significant, then const axes, then value parameters.
package matrix

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/denizgursoy/kesit/internal/model"
)

type Kind int

const (
	KindType Kind = iota
	KindConst
	KindParameter
)

func (k Kind) prefix() string {
	switch k {
	case KindType:
		return "type"
	case KindConst:
		return "const"
	default:
		return "input"
	}
}

type (
	// Assignment binds one axis to one of its values.
	Assignment struct {
		Axis  string
		Index int
		Value model.Value
	}

	// Binding is one combination of values across every axis of a test.
	Binding struct {
		Types  []Assignment
		Consts []Assignment
		Params []Assignment
	}

	// Axes are the axes of one test, each group already in signature order.
	Axes struct {
		Types  []model.Axis
		Consts []model.Axis
		Params []model.Axis
	}
)

// Size is the number of bindings Expand produces.
func Size(axes Axes) int {
	size := 1
	for _, group := range [][]model.Axis{axes.Types, axes.Consts, axes.Params} {
		size = lo.Reduce(group, func(acc int, axis model.Axis, _ int) int {
			return acc * len(axis.Values)
		}, size)
	}
	return size
}

// Expand returns every binding in ordering-contract order. Zero axes yield a
// single empty binding.
func Expand(axes Axes) []Binding {
	bindings := make([]Binding, 0, Size(axes))
	for _, types := range Product(axes.Types) {
		for _, consts := range Product(axes.Consts) {
			for _, params := range Product(axes.Params) {
				bindings = append(bindings, Binding{Types: types, Consts: consts, Params: params})
			}
		}
	}
	return bindings
}

// Product enumerates one group. It always returns at least one row; the row is
// empty when there are no axes.
func Product(axes []model.Axis) [][]Assignment {
	total := 1
	for _, axis := range axes {
		total *= len(axis.Values)
	}
	rows := make([][]Assignment, 0, total)
	if total == 0 {
		return rows
	}

	digits := make([]int, len(axes))
	for range total {
		row := make([]Assignment, len(axes))
		for i, axis := range axes {
			row[i] = Assignment{Axis: axis.Name, Index: digits[i], Value: axis.Values[digits[i]]}
		}
		rows = append(rows, row)

		// increment, last digit first
		for i := len(digits) - 1; i >= 0; i-- {
			digits[i]++
			if digits[i] < len(axes[i].Values) {
				break
			}
			digits[i] = 0
		}
	}
	return rows
}

// IsEmpty reports whether the binding assigns nothing.
func (b Binding) IsEmpty() bool {
	return len(b.Types) == 0 && len(b.Consts) == 0 && len(b.Params) == 0
}

// Name is the case name of the binding, "" for the empty binding.
//
//	one axis:      input_1
//	several axes:  inputs_1_2
//	mixed kinds:   type_0_inputs_1_2
func (b Binding) Name() string {
	parts := make([]string, 0, 3)
	for _, group := range []struct {
		kind        Kind
		assignments []Assignment
	}{
		{KindType, b.Types},
		{KindConst, b.Consts},
		{KindParameter, b.Params},
	} {
		if name := groupName(group.kind, group.assignments); name != "" {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "_")
}

func groupName(kind Kind, assignments []Assignment) string {
	if len(assignments) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(kind.prefix())
	if len(assignments) > 1 {
		b.WriteString("s")
	}
	for _, a := range assignments {
		b.WriteString("_")
		b.WriteString(strconv.Itoa(a.Index))
	}
	return b.String()
}

// Lookup returns the assignment of the named value or const axis.
func (b Binding) Lookup(name string) (Assignment, bool) {
	for _, group := range [][]Assignment{b.Params, b.Consts} {
		if a, ok := lo.Find(group, func(a Assignment) bool { return a.Axis == name }); ok {
			return a, true
		}
	}
	return Assignment{}, false
}

// All returns every assignment, types first.
func (b Binding) All() []Assignment {
	return lo.Flatten([][]Assignment{b.Types, b.Consts, b.Params})
}
