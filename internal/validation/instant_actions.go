package validation

import (
	"strconv"

	"vda5050-bridge/internal/vda5050"
)

// ValidateInstantActions checks action id uniqueness within ia and, given
// WithActiveOrder, against the ids of the running order.
func ValidateInstantActions(ia *vda5050.InstantActions, opts ...Option) Violations {
	o := newOptions(opts)
	c := &collector{}
	checkHeader(c, ia.Header)

	var orderIDs map[string]bool
	if o.activeOrder != nil {
		ids := o.activeOrder.ActionIDs()
		orderIDs = make(map[string]bool, len(ids))
		for _, id := range ids {
			orderIDs[id] = true
		}
	}

	seen := make(map[string]bool, len(ia.Actions))
	for i, a := range ia.Actions {
		path := field(index("actions", i), "actionId")
		if seen[a.ActionID] {
			c.add(KindDuplicateActionID, path, "action id "+strconv.Quote(a.ActionID)+" is used twice", a.ActionID)
		}
		seen[a.ActionID] = true
		if orderIDs[a.ActionID] {
			c.add(KindActionIDCollision, path,
				"action id "+strconv.Quote(a.ActionID)+" collides with order "+strconv.Quote(o.activeOrder.OrderID),
				a.ActionID, o.activeOrder.OrderID)
		}
	}
	return c.vs
}
