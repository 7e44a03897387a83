package hooks

// HookType represents the event a hook script is attached to.
type HookType string

// Supported hook types.
const (
	PostDownload       HookType = "post-download"
	VerificationFailed HookType = "verification-failed"
)

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext contains information passed to hooks.
type HookContext struct {
	ProductName     string
	ProductPath     string
	TargetDirectory string
	Checksum        string
	DryRun          bool
	Vars            map[string]interface{}
}

// HookManager defines the interface for managing hooks.
type HookManager interface {
	// Execute runs the specified hook type with the given context
	Execute(hookType HookType, ctx HookContext) error

	// AddHook adds a new hook
	AddHook(hook Hook) error

	// RemoveHook removes a hook of the specified type
	RemoveHook(hookType HookType) error

	// HasHook checks if a hook of the specified type exists
	HasHook(hookType HookType) bool
}

func (t HookType) valid() bool {
	switch t {
	case PostDownload, VerificationFailed:
		return true
	default:
		return false
	}
}
