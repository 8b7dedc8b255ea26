package datatype

import "strings"

var qcPrefixes = []string{"QC_", "WOCE_"}
var qcSuffixes = []string{"_QC", "_WOCE"}

const (
	commentPrefix = "COMMENT_"
	commentSuffix = "_COMMENT"
)

// IsQCFlag reports whether dt is a quality-control flag type, named with
// a QC_ or WOCE_ prefix or a _QC or _WOCE suffix.
func (dt *DataType) IsQCFlag() bool {
	_, ok := qcTarget(dt.varName)
	return ok
}

// IsComment reports whether dt is a comment type, named with a COMMENT_
// prefix or a _COMMENT suffix.
func (dt *DataType) IsComment() bool {
	_, ok := commentTarget(dt.varName)
	return ok
}

// IsQCFlagFor reports whether dt is a QC flag for o.
// A flag with an empty target, such as WOCE_AUTOCHECK, flags no single type.
func (dt *DataType) IsQCFlagFor(o *DataType) bool {
	target, ok := qcTarget(dt.varName)
	return ok && target != "" && strings.EqualFold(target, o.varName)
}

// IsCommentFor reports whether dt is a comment on o.
func (dt *DataType) IsCommentFor(o *DataType) bool {
	target, ok := commentTarget(dt.varName)
	return ok && target != "" && strings.EqualFold(target, o.varName)
}

func qcTarget(name string) (string, bool) {
	upper := strings.ToUpper(name)
	for _, p := range qcPrefixes {
		if strings.HasPrefix(upper, p) {
			return targetOf(name[len(p):]), true
		}
	}
	for _, s := range qcSuffixes {
		if strings.HasSuffix(upper, s) {
			return name[:len(name)-len(s)], true
		}
	}
	return "", false
}

func commentTarget(name string) (string, bool) {
	upper := strings.ToUpper(name)
	switch {
	case strings.HasPrefix(upper, commentPrefix):
		return name[len(commentPrefix):], true
	case strings.HasSuffix(upper, commentSuffix):
		return name[:len(name)-len(commentSuffix)], true
	}
	return "", false
}

// targetOf maps the remainder of a prefixed flag name to the flagged
// variable name. Upper-case remainders such as AUTOCHECK name a check,
// not a variable.
func targetOf(rest string) string {
	if rest == strings.ToUpper(rest) && strings.ToLower(rest) != rest {
		return ""
	}
	return rest
}
