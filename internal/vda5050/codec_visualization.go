package vda5050

// EncodeVisualization renders v as a flat wire document.
func EncodeVisualization(v *Visualization) ([]byte, error) {
	return encodeMessage(v.Header, func(w *objectWriter) {
		optionalObjectField(w, "agvPosition", v.AgvPosition, writeAgvPosition)
		optionalObjectField(w, "agvVelocity", v.AgvVelocity, writeVelocity)
		optionalListField(w, "agvOutline", v.AgvOutline, writePoint)
		optionalListField(w, "visualizations", v.Visualizations, writeVisualizationObject)
	})
}

// DecodeVisualization parses a visualization document.
func DecodeVisualization(data []byte, opts ...DecodeOption) (*Visualization, error) {
	return decodeMessage(data, opts, func(o *object, h Header) (Visualization, error) {
		v := Visualization{Header: h}
		var err error
		if v.AgvPosition, err = optionalObject(o, "agvPosition", decodeAgvPosition); err != nil {
			return v, err
		}
		if v.AgvVelocity, err = optionalObject(o, "agvVelocity", decodeVelocity); err != nil {
			return v, err
		}
		if v.AgvOutline, err = optionalList(o, "agvOutline", objectElem(decodePoint)); err != nil {
			return v, err
		}
		v.Visualizations, err = optionalList(o, "visualizations", objectElem(decodeVisualizationObject))
		return v, err
	})
}

func (v Visualization) MarshalJSON() ([]byte, error) {
	return EncodeVisualization(&v)
}

func (v *Visualization) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeVisualization(data)
	if err != nil {
		return err
	}
	*v = *decoded
	return nil
}

func decodeVisualizationObject(o *object) (VisualizationObject, error) {
	var vo VisualizationObject
	var err error
	if err = required(o, "type", &vo.Type); err != nil {
		return vo, err
	}
	if err = required(o, "id", &vo.ID); err != nil {
		return vo, err
	}
	vo.Data, err = anyDocument(o, "data")
	return vo, err
}

func writeVisualizationObject(e *encoder, path string, vo VisualizationObject) {
	e.object(path, func(w *objectWriter) {
		field(w, "type", vo.Type)
		field(w, "id", vo.ID)
		documentField(w, "data", vo.Data)
	})
}
