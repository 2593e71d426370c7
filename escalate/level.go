package escalate

// Level ranks how far a failure is pushed up the support chain. Higher
// values reach broader audiences.
type Level int

const (
	// LevelNone means the failure is handled in-band and nobody is paged.
	LevelNone Level = iota
	// LevelAutomated triggers automated remediation only.
	LevelAutomated
	// LevelMonitoring surfaces the failure on dashboards and alert feeds.
	LevelMonitoring
	// LevelSupport routes the failure to the support rotation.
	LevelSupport
	// LevelEngineering routes the failure to the owning engineering team.
	LevelEngineering
	// LevelCritical pages immediately, regardless of hour.
	LevelCritical
)

var levelNames = map[Level]string{
	LevelNone:        "none",
	LevelAutomated:   "automated",
	LevelMonitoring:  "monitoring",
	LevelSupport:     "support",
	LevelEngineering: "engineering",
	LevelCritical:    "critical",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}
