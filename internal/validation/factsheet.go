package validation

import "vda5050-bridge/internal/vda5050"

func ValidateFactsheet(f *vda5050.Factsheet) Violations {
	c := &collector{}
	checkHeader(c, f.Header)

	checkDimensions(c, "agvDimensions", f.AgvDimensions)
	if f.LoadDimensions != nil {
		checkDimensions(c, "loadDimensions", *f.LoadDimensions)
	}
	if f.MaxLoad != nil && *f.MaxLoad < 0 {
		c.addf(KindNegativeDimension, "maxLoad", nil, "maxLoad must not be negative, got %g", *f.MaxLoad)
	}

	for i, a := range f.Actions {
		if len(a.ActionScopes) == 0 {
			c.add(KindEmptyActionScopes, field(index("actions", i), "actionScopes"),
				"action "+a.ActionType+" declares no scope", a.ActionType)
		}
	}
	return c.vs
}

func checkDimensions(c *collector, path string, d vda5050.Dimensions) {
	check := func(name string, v float64) {
		if v < 0 {
			c.addf(KindNegativeDimension, field(path, name), nil, "%s must not be negative, got %g", name, v)
		}
	}
	check("length", d.Length)
	check("width", d.Width)
	if d.Height != nil {
		check("height", *d.Height)
	}
}
