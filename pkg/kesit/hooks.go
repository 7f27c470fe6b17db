package kesit

import "sort"

// Hooks holds lifecycle hooks for test execution.
// All discovered hook functions are executed, sorted by Order.
type Hooks struct {
	// Order determines execution order (lower = runs first).
	// Default is 0. Hooks with same Order run in discovery order.
	Order int

	// BeforeAll runs once before all cases.
	BeforeAll func()

	// AfterAll runs once after all cases, including parallel ones.
	AfterAll func()

	// BeforeCase runs before each generated case, before its fixture is prepared.
	BeforeCase func(CaseInfo)

	// AfterCase runs after each generated case.
	// The error is nil when the case passed, non-nil on failure.
	AfterCase func(CaseInfo, error)

	// BeforeSection runs when a section is entered.
	BeforeSection func(SectionInfo)

	// AfterSection runs when an entered section returns or fails.
	AfterSection func(SectionInfo)
}

// SortHooks sorts hooks by Order (ascending).
// Hooks with the same Order maintain their relative order (stable sort).
func SortHooks(hooks []*Hooks) []*Hooks {
	sorted := make([]*Hooks, len(hooks))
	copy(sorted, hooks)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	return sorted
}

// HookExecutor manages execution of multiple hooks.
type HookExecutor struct {
	hooks []*Hooks // sorted by Order
}

// NewHookExecutor creates a new HookExecutor with sorted hooks.
func NewHookExecutor(hooks ...*Hooks) *HookExecutor {
	validHooks := make([]*Hooks, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			validHooks = append(validHooks, h)
		}
	}

	return &HookExecutor{
		hooks: SortHooks(validHooks),
	}
}

func (e *HookExecutor) ExecuteBeforeAll() {
	for _, h := range e.hooks {
		if h.BeforeAll != nil {
			h.BeforeAll()
		}
	}
}

func (e *HookExecutor) ExecuteAfterAll() {
	for _, h := range e.hooks {
		if h.AfterAll != nil {
			h.AfterAll()
		}
	}
}

func (e *HookExecutor) ExecuteBeforeCase(info CaseInfo) {
	for _, h := range e.hooks {
		if h.BeforeCase != nil {
			h.BeforeCase(info)
		}
	}
}

func (e *HookExecutor) ExecuteAfterCase(info CaseInfo, err error) {
	for _, h := range e.hooks {
		if h.AfterCase != nil {
			h.AfterCase(info, err)
		}
	}
}

func (e *HookExecutor) ExecuteBeforeSection(info SectionInfo) {
	for _, h := range e.hooks {
		if h.BeforeSection != nil {
			h.BeforeSection(info)
		}
	}
}

// ExecuteAfterSection runs in reverse Order so that section hooks nest.
func (e *HookExecutor) ExecuteAfterSection(info SectionInfo) {
	for i := len(e.hooks) - 1; i >= 0; i-- {
		if h := e.hooks[i]; h.AfterSection != nil {
			h.AfterSection(info)
		}
	}
}
