package hooking

// The positions at which a generator invokes its hooks. For HookPosGenerate
// the Item of the HookCtx is the generated value and the Detail holds the
// tags of the product as a map[string]string, or nil if it has none.
var (
	HookPosInit     = &HookPos{Name: "HookPosInit"}
	HookPosGenerate = &HookPos{Name: "HookPosGenerate"}
	HookPosDeplete  = &HookPos{Name: "HookPosDeplete"}
	HookPosReset    = &HookPos{Name: "HookPosReset"}
	HookPosClose    = &HookPos{Name: "HookPosClose"}
)

type namedDomain interface {
	Name() string
}

// DomainName returns the name of the object that triggered the hook, or an
// empty string if it is not named.
func DomainName(ctx HookCtx) string {
	if n, ok := ctx.Domain.(namedDomain); ok {
		return n.Name()
	}

	return ""
}
