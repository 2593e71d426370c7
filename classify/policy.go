package classify

// Resolution strategies suggested by the policy table. Advisory only: the
// retry engine applies its own eligibility rules and may override.
const (
	StrategyRetryBackoff     = "retry-with-backoff"
	StrategyEscalate         = "escalate"
	StrategyAutoFix          = "auto-fix"
	StrategyValidateInput    = "validate-input"
	StrategyReauthenticate   = "reauthenticate"
	StrategyFreeResources    = "free-resources"
	StrategyCheckEnvironment = "check-environment"
	StrategyResolveDep       = "resolve-dependency"
)

// Policy holds the static per-kind defaults attached to every
// classification of that kind.
type Policy struct {
	Severity            Severity
	Strategy            string
	MaxRetries          int
	BackoffMultiplier   float64
	EscalationThreshold int
	Retryable           bool
}

// defaultPolicies is the static policy table, indexed by Kind. The array
// length pins the table to the closed kind set: adding a kind without a
// policy entry fails to compile.
var defaultPolicies = [numKinds]Policy{
	KindUnknown: {
		Severity:            SeverityMedium,
		Strategy:            StrategyRetryBackoff,
		MaxRetries:          1,
		BackoffMultiplier:   2.0,
		EscalationThreshold: 3,
		Retryable:           true,
	},
	KindSyntax: {
		Severity:            SeverityHigh,
		Strategy:            StrategyAutoFix,
		MaxRetries:          0,
		BackoffMultiplier:   1.0,
		EscalationThreshold: 1,
		Retryable:           false,
	},
	KindDependency: {
		Severity:            SeverityMedium,
		Strategy:            StrategyResolveDep,
		MaxRetries:          2,
		BackoffMultiplier:   2.0,
		EscalationThreshold: 3,
		Retryable:           true,
	},
	KindEnvironment: {
		Severity:            SeverityMedium,
		Strategy:            StrategyCheckEnvironment,
		MaxRetries:          2,
		BackoffMultiplier:   1.5,
		EscalationThreshold: 3,
		Retryable:           true,
	},
	KindLogic: {
		Severity:            SeverityHigh,
		Strategy:            StrategyEscalate,
		MaxRetries:          0,
		BackoffMultiplier:   1.0,
		EscalationThreshold: 1,
		Retryable:           false,
	},
	KindNetwork: {
		Severity:            SeverityMedium,
		Strategy:            StrategyRetryBackoff,
		MaxRetries:          3,
		BackoffMultiplier:   2.0,
		EscalationThreshold: 5,
		Retryable:           true,
	},
	KindAPI: {
		Severity:            SeverityMedium,
		Strategy:            StrategyRetryBackoff,
		MaxRetries:          3,
		BackoffMultiplier:   2.0,
		EscalationThreshold: 4,
		Retryable:           true,
	},
	KindValidation: {
		Severity:            SeverityLow,
		Strategy:            StrategyValidateInput,
		MaxRetries:          0,
		BackoffMultiplier:   1.0,
		EscalationThreshold: 2,
		Retryable:           false,
	},
	KindResource: {
		Severity:            SeverityHigh,
		Strategy:            StrategyFreeResources,
		MaxRetries:          1,
		BackoffMultiplier:   3.0,
		EscalationThreshold: 2,
		Retryable:           true,
	},
	KindAuthentication: {
		Severity:            SeverityCritical,
		Strategy:            StrategyReauthenticate,
		MaxRetries:          0,
		BackoffMultiplier:   1.0,
		EscalationThreshold: 1,
		Retryable:           false,
	},
}

// PolicyFor returns the static policy entry for a kind. Out-of-range kinds
// get the unknown policy.
func PolicyFor(k Kind) Policy {
	if k < 0 || int(k) >= numKinds {
		return defaultPolicies[KindUnknown]
	}
	return defaultPolicies[k]
}
