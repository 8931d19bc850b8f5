package vda5050

// The action list was renamed from "instantActions" to "actions" in 2.0.
const (
	keyActions       = "actions"
	keyLegacyActions = "instantActions"
)

func instantActionsKeys(version string) (primary, fallback string) {
	if isLegacyVersion(version) {
		return keyLegacyActions, keyActions
	}
	return keyActions, keyLegacyActions
}

// EncodeInstantActions renders ia as a flat wire document. The list key
// follows the header's protocol version.
func EncodeInstantActions(ia *InstantActions) ([]byte, error) {
	key, _ := instantActionsKeys(ia.Version)
	return encodeMessage(ia.Header, func(w *objectWriter) {
		listField(w, key, ia.Actions, writeAction)
	})
}

// DecodeInstantActions parses an instant actions document. The list is read
// from the key of the header's protocol version, falling back to the other
// spelling.
func DecodeInstantActions(data []byte, opts ...DecodeOption) (*InstantActions, error) {
	return decodeMessage(data, opts, func(o *object, h Header) (InstantActions, error) {
		ia := InstantActions{Header: h}
		key, fallback := instantActionsKeys(h.Version)
		if !o.has(key) && o.has(fallback) {
			key = fallback
		}
		var err error
		ia.Actions, err = requiredList(o, key, objectElem(decodeAction))
		return ia, err
	})
}

func (ia InstantActions) MarshalJSON() ([]byte, error) {
	return EncodeInstantActions(&ia)
}

func (ia *InstantActions) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeInstantActions(data)
	if err != nil {
		return err
	}
	*ia = *decoded
	return nil
}
