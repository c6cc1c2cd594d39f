package outline

// Outline is the two-level heading tree of one loaded content fragment.
type Outline struct {
	Headings []Heading `json:"headings"` // Top-level sections, document order
}

// Heading is a top-level section heading.
type Heading struct {
	ID       string       `json:"id"`
	Label    string       `json:"label"`
	Children []SubHeading `json:"children"`
}

// SubHeading is a nested heading owned by the nearest preceding Heading.
type SubHeading struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Len returns the number of top-level headings.
func (o Outline) Len() int {
	return len(o.Headings)
}

// IDs returns every identifier in the outline, parents before their children.
func (o Outline) IDs() []string {
	var ids []string
	for _, h := range o.Headings {
		ids = append(ids, h.ID)
		for _, c := range h.Children {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
