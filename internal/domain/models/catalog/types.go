package catalog

import (
	"fmt"
	"strings"
)

// ItemType identifies which of the four entity kinds an item belongs to.
// The set is closed; every consumer switches on it and treats anything
// else as unknown.
type ItemType string

const (
	TypeCourse  ItemType = "course"
	TypeSubject ItemType = "subject"
	TypeFolder  ItemType = "folder"
	TypeQuiz    ItemType = "quiz"

	// TypeRoot is the pseudo-type of the root drop zone. It is never the
	// type of a stored entity.
	TypeRoot ItemType = ""
)

// ItemRef is the composite (type, id) key used for selection and drag
// identity. IDs are only unique within an entity kind, so a bare ID is
// never a valid identity across the tree.
type ItemRef struct {
	Type ItemType `json:"type"`
	ID   string   `json:"id"`
}

// Key returns the canonical string form "type:id".
func (r ItemRef) Key() string {
	return string(r.Type) + ":" + r.ID
}

// ParseItemKey parses a "type:id" selection key back into an ItemRef.
func ParseItemKey(key string) (ItemRef, error) {
	typ, id, ok := strings.Cut(key, ":")
	if !ok || typ == "" || id == "" {
		return ItemRef{}, fmt.Errorf("invalid item key %q", key)
	}
	return ItemRef{Type: ItemType(typ), ID: id}, nil
}
