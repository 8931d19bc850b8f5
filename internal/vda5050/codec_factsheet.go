package vda5050

// EncodeFactsheet renders f as a flat wire document.
func EncodeFactsheet(f *Factsheet) ([]byte, error) {
	return encodeMessage(f.Header, func(w *objectWriter) {
		field(w, "type", f.Type)
		field(w, "typeVersion", f.TypeVersion)
		enumField(w, "agvKinematic", agvKinematics, f.AgvKinematic)
		optionalField(w, "maxLoad", f.MaxLoad)
		optionalObjectField(w, "loadDimensions", f.LoadDimensions, writeDimensions)
		objectField(w, "agvDimensions", f.AgvDimensions, writeDimensions)
		listField(w, "actions", f.Actions, writeActionDefinition)
	})
}

// DecodeFactsheet parses a factsheet document.
func DecodeFactsheet(data []byte, opts ...DecodeOption) (*Factsheet, error) {
	return decodeMessage(data, opts, func(o *object, h Header) (Factsheet, error) {
		f := Factsheet{Header: h}
		var err error
		if err = required(o, "type", &f.Type); err != nil {
			return f, err
		}
		if err = required(o, "typeVersion", &f.TypeVersion); err != nil {
			return f, err
		}
		if err = requiredEnum(o, "agvKinematic", agvKinematics, &f.AgvKinematic); err != nil {
			return f, err
		}
		if err = optional(o, "maxLoad", &f.MaxLoad); err != nil {
			return f, err
		}
		if f.LoadDimensions, err = optionalObject(o, "loadDimensions", decodeDimensions); err != nil {
			return f, err
		}
		if f.AgvDimensions, err = requiredObject(o, "agvDimensions", decodeDimensions); err != nil {
			return f, err
		}
		f.Actions, err = requiredList(o, "actions", objectElem(decodeActionDefinition))
		return f, err
	})
}

func (f Factsheet) MarshalJSON() ([]byte, error) {
	return EncodeFactsheet(&f)
}

func (f *Factsheet) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeFactsheet(data)
	if err != nil {
		return err
	}
	*f = *decoded
	return nil
}

func decodeActionDefinition(o *object) (ActionDefinition, error) {
	var a ActionDefinition
	var err error
	if err = required(o, "actionType", &a.ActionType); err != nil {
		return a, err
	}
	if err = required(o, "actionDescription", &a.ActionDescription); err != nil {
		return a, err
	}
	if a.ActionScopes, err = requiredList(o, "actionScopes", enumElem(actionScopes)); err != nil {
		return a, err
	}
	if a.ActionParameters, err = optionalList(o, "actionParameters", objectElem(decodeActionParameterDefinition)); err != nil {
		return a, err
	}
	a.ResultDescription, err = optionalDocument(o, "resultDescription")
	return a, err
}

func writeActionDefinition(e *encoder, path string, a ActionDefinition) {
	e.object(path, func(w *objectWriter) {
		field(w, "actionType", a.ActionType)
		field(w, "actionDescription", a.ActionDescription)
		listField(w, "actionScopes", a.ActionScopes, enumEncoder(actionScopes))
		optionalListField(w, "actionParameters", a.ActionParameters, writeActionParameterDefinition)
		optionalDocumentField(w, "resultDescription", a.ResultDescription)
	})
}

func decodeActionParameterDefinition(o *object) (ActionParameterDefinition, error) {
	var p ActionParameterDefinition
	if err := required(o, "key", &p.Key); err != nil {
		return p, err
	}
	if err := requiredEnum(o, "valueDataType", valueDataTypes, &p.ValueDataType); err != nil {
		return p, err
	}
	if err := optional(o, "description", &p.Description); err != nil {
		return p, err
	}
	err := optional(o, "isOptional", &p.IsOptional)
	return p, err
}

func writeActionParameterDefinition(e *encoder, path string, p ActionParameterDefinition) {
	e.object(path, func(w *objectWriter) {
		field(w, "key", p.Key)
		enumField(w, "valueDataType", valueDataTypes, p.ValueDataType)
		optionalField(w, "description", p.Description)
		optionalField(w, "isOptional", p.IsOptional)
	})
}
