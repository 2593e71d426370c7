package classify

// Kind identifies the failure taxonomy entry a classification belongs to.
// The set is closed: unmapped failures are always KindUnknown, never a new
// ad-hoc kind.
type Kind int

const (
	// KindUnknown is the fallback for failures no signal can place.
	KindUnknown Kind = iota
	// KindSyntax covers malformed source or data that failed to parse.
	KindSyntax
	// KindDependency covers missing or broken packages and modules.
	KindDependency
	// KindEnvironment covers missing files, commands and environment setup.
	KindEnvironment
	// KindLogic covers programming errors: nil dereferences, bad indexes.
	KindLogic
	// KindNetwork covers transport failures: refused, reset, timed out.
	KindNetwork
	// KindAPI covers upstream service failures (5xx and friends).
	KindAPI
	// KindValidation covers rejected input: bad requests, schema violations.
	KindValidation
	// KindResource covers exhaustion: memory, file handles, quotas, rate limits.
	KindResource
	// KindAuthentication covers credential and permission failures.
	KindAuthentication

	numKinds int = iota
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindDependency:
		return "dependency"
	case KindEnvironment:
		return "environment"
	case KindLogic:
		return "logic"
	case KindNetwork:
		return "network"
	case KindAPI:
		return "api"
	case KindValidation:
		return "validation"
	case KindResource:
		return "resource"
	case KindAuthentication:
		return "authentication"
	case KindUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// KindFromString maps a kind name back to its Kind. Unrecognized names map
// to KindUnknown.
func KindFromString(name string) Kind {
	switch name {
	case "syntax":
		return KindSyntax
	case "dependency":
		return KindDependency
	case "environment":
		return KindEnvironment
	case "logic":
		return KindLogic
	case "network":
		return KindNetwork
	case "api":
		return KindAPI
	case "validation":
		return KindValidation
	case "resource":
		return KindResource
	case "authentication":
		return KindAuthentication
	default:
		return KindUnknown
	}
}

// Severity is the ordered impact level of a classification.
type Severity int

const (
	// SeverityLow marks failures with negligible blast radius.
	SeverityLow Severity = iota
	// SeverityMedium is the default for most kinds and all uncertain verdicts.
	SeverityMedium
	// SeverityHigh marks failures needing prompt attention.
	SeverityHigh
	// SeverityCritical marks failures that endanger the platform.
	SeverityCritical
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "medium"
	}
}
