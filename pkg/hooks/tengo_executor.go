package hooks

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// TengoExecutor handles the execution of Tengo scripts.
type TengoExecutor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[HookType]string),
	}
}

// Execute runs the specified hook type with the given context.
func (e *TengoExecutor) Execute(hookType HookType, ctx HookContext) error {
	e.mutex.RLock()
	script, exists := e.scripts[hookType]
	e.mutex.RUnlock()
	if !exists {
		return nil
	}

	scriptInstance := tengo.NewScript([]byte(script))
	scriptInstance.SetImports(stdlib.GetModuleMap("fmt", "os", "text", "times", "json"))

	vars := ctx.Vars
	if vars == nil {
		vars = map[string]interface{}{}
	}

	for name, value := range map[string]interface{}{
		"productName":     ctx.ProductName,
		"productPath":     ctx.ProductPath,
		"targetDirectory": ctx.TargetDirectory,
		"checksum":        ctx.Checksum,
		"dryRun":          ctx.DryRun,
		"vars":            vars,
		"err":             "",
	} {
		if err := scriptInstance.Add(name, value); err != nil {
			return fmt.Errorf("failed to add %s to script: %w", name, err)
		}
	}

	compiled, err := scriptInstance.Run()
	if err != nil {
		return fmt.Errorf("%s: %w: %w", hookType, ErrHookExecution, err)
	}

	switch v := compiled.Get("err").Object().(type) {
	case *tengo.Error:
		return fmt.Errorf("%s: %w: %s", hookType, ErrHookScript, v.Value.String())
	case *tengo.String:
		if v.Value != "" {
			return fmt.Errorf("%s: %w: %s", hookType, ErrHookScript, v.Value)
		}
	}

	return nil
}

// AddScript adds or updates a script for the specified hook type.
func (e *TengoExecutor) AddScript(hookType HookType, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
}

// RemoveScript removes the script for the specified hook type.
func (e *TengoExecutor) RemoveScript(hookType HookType) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.scripts, hookType)
}

// HasScript checks if a script exists for the specified hook type.
func (e *TengoExecutor) HasScript(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
