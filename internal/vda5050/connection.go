package vda5050

// Connection is the liveness record of a vehicle session. A broker delivers
// it with ConnectionStateConnectionBroken as last will when the session
// drops without a clean disconnect.
type Connection struct {
	Header

	ConnectionState ConnectionState
	LastStateChange string
}
