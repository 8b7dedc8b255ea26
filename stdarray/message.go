package stdarray

import (
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-dsg/datatype"
)

// Message is a diagnostic produced while standardizing or checking data.
// Row and Column are 1-based; zero means the message is not tied to a
// row or column.
type Message struct {
	Severity   datatype.Severity
	Row        int
	Column     int
	ColumnName string
	General    string
	Detail     string
}

func (m Message) String() string {
	var b strings.Builder
	b.WriteString(m.Severity.String())
	if m.Row > 0 {
		fmt.Fprintf(&b, " row %d", m.Row)
	}
	if m.Column > 0 {
		fmt.Fprintf(&b, " column %d", m.Column)
		if m.ColumnName != "" {
			fmt.Fprintf(&b, " (%s)", m.ColumnName)
		}
	}
	b.WriteString(": ")
	if m.Detail != "" {
		b.WriteString(m.Detail)
	} else {
		b.WriteString(m.General)
	}
	return b.String()
}

// CountBySeverity tallies messages by severity.
func CountBySeverity(msgs []Message) map[datatype.Severity]int {
	res := make(map[datatype.Severity]int)
	for _, m := range msgs {
		res[m.Severity]++
	}
	return res
}
