package classify

import "regexp"

// kindPatterns holds the precompiled message patterns for one kind.
// Patterns are compiled once at package init; classification only executes
// them.
type kindPatterns struct {
	kind     Kind
	patterns []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return compiled
}

// messagePatterns is evaluated in slice order; ties on match count keep the
// earlier kind, so the order below is a deliberate precedence.
var messagePatterns = []kindPatterns{
	{KindNetwork, compileAll(
		`connection refused`,
		`connection reset`,
		`connection (closed|aborted)`,
		`\btimed? ?out\b`,
		`network (is )?unreachable`,
		`no route to host`,
		`dns|name resolution`,
		`broken pipe`,
		`econnrefused|econnreset|etimedout|ehostunreach`,
	)},
	{KindAuthentication, compileAll(
		`unauthorized`,
		`authentication failed`,
		`invalid (credentials|token|api.?key)`,
		`access denied`,
		`forbidden`,
		`token (has )?expired`,
		`permission denied`,
	)},
	{KindResource, compileAll(
		`out of memory|\boom\b`,
		`resource exhausted`,
		`too many open files`,
		`quota exceeded`,
		`rate limit`,
		`memory limit`,
		`no space left`,
		`disk full`,
	)},
	{KindAPI, compileAll(
		`internal server error`,
		`bad gateway`,
		`service unavailable`,
		`gateway timeout`,
		`api (error|failure)`,
		`status( code)? 5\d\d`,
		`upstream (error|failure)`,
	)},
	{KindValidation, compileAll(
		`validation (failed|error)`,
		`invalid (input|argument|parameter|value|format)`,
		`missing required`,
		`bad request`,
		`schema (violation|mismatch|validation)`,
		`constraint violation`,
	)},
	{KindSyntax, compileAll(
		`syntax error`,
		`unexpected token`,
		`parse (error|failure)|parsing failed`,
		`invalid json|malformed`,
		`unexpected end of (input|file)`,
	)},
	{KindDependency, compileAll(
		`module not found`,
		`cannot (find|resolve) (module|package|dependency)`,
		`no such module`,
		`dependency (missing|conflict|error)`,
		`import (error|failure)`,
		`is not installed`,
		`version (conflict|mismatch)`,
	)},
	{KindLogic, compileAll(
		`nil pointer|null pointer|nullpointerexception`,
		`undefined is not a`,
		`index out of (range|bounds)`,
		`assertion failed`,
		`divi(de|sion) by zero`,
		`stack overflow`,
		`invalid state`,
	)},
	{KindEnvironment, compileAll(
		`no such file or directory`,
		`command not found`,
		`environment variable`,
		`not recognized as an internal or external command`,
		`executable file not found`,
		`\benoent\b`,
	)},
}

// codeMapping binds a status or platform code to a kind with a confidence.
type codeMapping struct {
	kind       Kind
	confidence float64
}

// statusCodeKinds maps transport/HTTP status codes to a kind and confidence.
// Evaluated first in the fusion order.
var statusCodeKinds = map[int]codeMapping{
	400: {KindValidation, 0.9},
	401: {KindAuthentication, 0.95},
	403: {KindAuthentication, 0.95},
	404: {KindAPI, 0.85},
	408: {KindNetwork, 0.85},
	409: {KindValidation, 0.8},
	422: {KindValidation, 0.9},
	429: {KindResource, 0.9},
	500: {KindAPI, 0.85},
	502: {KindAPI, 0.9},
	503: {KindAPI, 0.9},
	504: {KindNetwork, 0.85},
}

// platformCodeKinds maps platform error codes (errno names and close kin) to
// a kind and confidence. The codes are matched against Context.ErrorCode and
// scanned for inside the error message itself, since shelled-out tooling
// usually surfaces them only as message text.
var platformCodeKinds = map[string]codeMapping{
	"ECONNREFUSED": {KindNetwork, 0.95},
	"ECONNRESET":   {KindNetwork, 0.95},
	"ECONNABORTED": {KindNetwork, 0.9},
	"ETIMEDOUT":    {KindNetwork, 0.95},
	"EHOSTUNREACH": {KindNetwork, 0.9},
	"ENETUNREACH":  {KindNetwork, 0.9},
	"EPIPE":        {KindNetwork, 0.85},
	"ENOMEM":       {KindResource, 0.95},
	"EMFILE":       {KindResource, 0.9},
	"ENFILE":       {KindResource, 0.9},
	"ENOSPC":       {KindResource, 0.9},
	"EACCES":       {KindAuthentication, 0.85},
	"EPERM":        {KindAuthentication, 0.85},
	"ENOENT":       {KindEnvironment, 0.85},
}

// platformCodeOrder fixes the scan order for codes embedded in message text
// so classification stays deterministic when a message carries several.
var platformCodeOrder = []string{
	"ECONNREFUSED", "ECONNRESET", "ECONNABORTED", "ETIMEDOUT",
	"EHOSTUNREACH", "ENETUNREACH", "EPIPE",
	"ENOMEM", "EMFILE", "ENFILE", "ENOSPC",
	"EACCES", "EPERM", "ENOENT",
}
