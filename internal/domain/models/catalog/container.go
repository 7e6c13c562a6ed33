package catalog

// Container is the normalized record for a course, subject or folder:
// one polymorphic shape with the parent reference already resolved.
// Quizzes are leaves and are tracked separately.
type Container struct {
	ID       string   `json:"id"`
	Type     ItemType `json:"type"`
	Name     string   `json:"name"`
	ParentID *string  `json:"parent_id"`
	Order    int      `json:"order"`
}

// Ref returns the composite key for this container.
func (c *Container) Ref() ItemRef {
	return ItemRef{Type: c.Type, ID: c.ID}
}
