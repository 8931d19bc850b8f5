package validation

import "vda5050-bridge/internal/vda5050"

func checkHeader(c *collector, h vda5050.Header) {
	if _, err := vda5050.ParseTimestamp(h.Timestamp); err != nil {
		c.add(KindTimestampFormat, "timestamp", err.Error())
	}
	if _, err := vda5050.MajorVersion(h.Version); err != nil {
		c.add(KindVersionFormat, "version", err.Error())
	}
}
