package figma

// FileResponse represents the response from the Figma file API endpoint.
// It contains the file metadata and the full document tree.
type FileResponse struct {
	Name          string `json:"name"`
	LastModified  string `json:"lastModified"`
	ThumbnailURL  string `json:"thumbnailUrl"`
	Version       string `json:"version"`
	Document      Node   `json:"document"`
	SchemaVersion int    `json:"schemaVersion"`
}

// ImagesResponse represents the response from the Figma images API endpoint.
// Images maps node IDs to transient download URLs; a missing or empty URL
// means Figma could not render that node.
type ImagesResponse struct {
	Err    string            `json:"err"`
	Images map[string]string `json:"images"`
}

// Node represents a single element in the Figma document tree hierarchy.
// Only the fields the export pipeline reads are modeled: identity, type,
// children, bounding box, description, and the owning component set.
type Node struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Type                string     `json:"type"` // DOCUMENT, CANVAS, COMPONENT, COMPONENT_SET, FRAME, ...
	Description         string     `json:"description,omitempty"`
	ComponentSetID      string     `json:"componentSetId,omitempty"`
	AbsoluteBoundingBox *Rectangle `json:"absoluteBoundingBox,omitempty"`
	Children            []Node     `json:"children,omitempty"`
}

// Rectangle represents a bounding box with position (X, Y) and dimensions (Width, Height).
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
