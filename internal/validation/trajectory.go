package validation

import "vda5050-bridge/internal/vda5050"

// ValidateTrajectory checks the NURBS shape of t. Path prefixes the
// reported violation paths.
func ValidateTrajectory(path string, t *vda5050.Trajectory) Violations {
	c := &collector{}
	checkTrajectory(c, path, t)
	return c.vs
}

func checkTrajectory(c *collector, path string, t *vda5050.Trajectory) {
	if t == nil {
		return
	}
	want := len(t.ControlPoints) + int(t.Degree) + 1
	if len(t.KnotVector) != want {
		c.addf(KindKnotVectorLength, field(path, "knotVector"), nil,
			"degree %d with %d control points needs %d knots, got %d",
			t.Degree, len(t.ControlPoints), want, len(t.KnotVector))
	}
	for i := 1; i < len(t.KnotVector); i++ {
		if t.KnotVector[i] < t.KnotVector[i-1] {
			c.addf(KindKnotVectorOrder, index(field(path, "knotVector"), i), nil,
				"knot %g is smaller than its predecessor %g", t.KnotVector[i], t.KnotVector[i-1])
		}
	}
	for i, p := range t.ControlPoints {
		if p.Weight != nil && *p.Weight <= 0 {
			c.addf(KindControlPointWeight, field(index(field(path, "controlPoints"), i), "weight"), nil,
				"weight must be positive, got %g", *p.Weight)
		}
	}
}
