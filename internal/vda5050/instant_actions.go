package vda5050

// InstantActions are executed outside the node/edge sequencing of an order.
// Their ids must not collide with the running order's action ids.
type InstantActions struct {
	Header

	Actions []Action
}
