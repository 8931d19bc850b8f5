package vda5050

// EncodeConnection renders c as a flat wire document.
func EncodeConnection(c *Connection) ([]byte, error) {
	return encodeMessage(c.Header, func(w *objectWriter) {
		enumField(w, "connectionState", connectionStates, c.ConnectionState)
		field(w, "lastStateChange", c.LastStateChange)
	})
}

// DecodeConnection parses a connection document.
func DecodeConnection(data []byte, opts ...DecodeOption) (*Connection, error) {
	return decodeMessage(data, opts, func(o *object, h Header) (Connection, error) {
		c := Connection{Header: h}
		if err := requiredEnum(o, "connectionState", connectionStates, &c.ConnectionState); err != nil {
			return c, err
		}
		err := required(o, "lastStateChange", &c.LastStateChange)
		return c, err
	})
}

func (c Connection) MarshalJSON() ([]byte, error) {
	return EncodeConnection(&c)
}

func (c *Connection) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeConnection(data)
	if err != nil {
		return err
	}
	*c = *decoded
	return nil
}
