package datatype

// Severity grades a standardization or quality-check message.
type Severity int

const (
	SeverityUnassigned Severity = iota
	SeverityAcceptable
	SeverityWarning
	SeverityError
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityAcceptable:
		return "ACCEPTABLE"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNASSIGNED"
	}
}

// BoundsIssue describes a value outside the bounds of its DataType.
type BoundsIssue struct {
	Severity Severity
	General  string
	Detail   string
}
