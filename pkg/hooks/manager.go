package hooks

import (
	"sync"
)

// DefaultHookManager is the default implementation of HookManager.
type DefaultHookManager struct {
	executor *TengoExecutor
	vars     map[string]interface{}
	mutex    sync.RWMutex
}

// NewHookManager creates a new hook manager. vars are exposed to every
// script under the name "vars".
func NewHookManager(vars map[string]interface{}) *DefaultHookManager {
	if vars == nil {
		vars = make(map[string]interface{})
	}
	return &DefaultHookManager{
		executor: NewTengoExecutor(),
		vars:     vars,
	}
}

// Execute runs the specified hook type with the given context.
func (m *DefaultHookManager) Execute(hookType HookType, ctx HookContext) error {
	if !m.HasHook(hookType) {
		return nil
	}

	merged := make(map[string]interface{}, len(m.vars)+len(ctx.Vars))
	m.mutex.RLock()
	for k, v := range m.vars {
		merged[k] = v
	}
	m.mutex.RUnlock()
	for k, v := range ctx.Vars {
		merged[k] = v
	}
	ctx.Vars = merged

	return m.executor.Execute(hookType, ctx)
}

// AddHook adds a new hook.
func (m *DefaultHookManager) AddHook(hook Hook) error {
	if hook.Type == "" {
		return ErrHookTypeEmpty
	}
	if !hook.Type.valid() {
		return ErrUnsupportedHookEvent(string(hook.Type))
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.executor.AddScript(hook.Type, hook.Content)
	return nil
}

// RemoveHook removes a hook of the specified type.
func (m *DefaultHookManager) RemoveHook(hookType HookType) error {
	if hookType == "" {
		return ErrHookTypeEmpty
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.executor.RemoveScript(hookType)
	return nil
}

// HasHook checks if a hook of the specified type exists.
func (m *DefaultHookManager) HasHook(hookType HookType) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.executor.HasScript(hookType)
}
