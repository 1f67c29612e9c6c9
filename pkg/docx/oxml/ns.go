package oxml

// Namespaces used by the story, style and drawing fragments
const (
	NsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	NsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
)
