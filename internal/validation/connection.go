package validation

import "vda5050-bridge/internal/vda5050"

func ValidateConnection(cn *vda5050.Connection) Violations {
	c := &collector{}
	checkHeader(c, cn.Header)
	if _, err := vda5050.ParseTimestamp(cn.LastStateChange); err != nil {
		c.add(KindTimestampFormat, "lastStateChange", err.Error())
	}
	return c.vs
}

// ValidateVisualization only checks the header. Visualization carries no
// invariants of its own.
func ValidateVisualization(v *vda5050.Visualization) Violations {
	c := &collector{}
	checkHeader(c, v.Header)
	return c.vs
}
