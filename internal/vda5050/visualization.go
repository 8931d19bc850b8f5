package vda5050

// Visualization is a best-effort, high-rate snapshot for display purposes.
type Visualization struct {
	Header

	AgvPosition    *AgvPosition
	AgvVelocity    *Velocity
	AgvOutline     []Point
	Visualizations []VisualizationObject
}

// VisualizationObject is a typed, opaque drawing primitive.
type VisualizationObject struct {
	Type string
	ID   string
	Data Document
}
