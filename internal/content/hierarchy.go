package content

import (
	"medquiz/internal/domain/models/catalog"
)

// legalParents is the single authority on which parent types an item
// type may be nested under. Every mutation path (drag-drop and dialog
// transfer) consults it through CanMoveItemToTarget; no path may bypass
// it. TypedChildrenOf below mirrors this table from the parent's side -
// when a type is added, both must change together, which is why they
// live in the same file.
//
// Strict hierarchy:
//
//	Course (root)
//	  -> Subject
//	       -> Folder
//	            -> Quiz
//	            -> Folder (nested)
var legalParents = map[catalog.ItemType][]catalog.ItemType{
	catalog.TypeCourse:  {},                                       // only root
	catalog.TypeSubject: {catalog.TypeCourse},                     // subjects only in courses
	catalog.TypeFolder:  {catalog.TypeSubject, catalog.TypeFolder}, // folders in subjects or subfolders
	catalog.TypeQuiz:    {catalog.TypeFolder},                     // quizzes only in folders
}

// CanMoveItemToTarget reports whether an item of itemType may be placed
// under a container of targetType. TypeRoot as the target means "move
// to root", which only courses may do. Unknown item types are illegal
// everywhere (fail closed).
func CanMoveItemToTarget(itemType, targetType catalog.ItemType) bool {
	if targetType == catalog.TypeRoot {
		return itemType == catalog.TypeCourse
	}

	parents, ok := legalParents[itemType]
	if !ok {
		return false
	}
	for _, p := range parents {
		if p == targetType {
			return true
		}
	}
	return false
}

// BuildContainers normalizes the three container collections into one
// flat polymorphic list with resolved parent pointers. Output order is
// the concatenation order (courses, then folders, then subjects); no
// re-sorting. Absent or malformed parent fields resolve to a nil
// parent, which makes the record an implicit root - tolerated here,
// rejected only when a move is attempted.
func BuildContainers(courses []catalog.Course, folders []catalog.Folder, subjects []catalog.Subject) []catalog.Container {
	containers := make([]catalog.Container, 0, len(courses)+len(folders)+len(subjects))

	// Courses are always roots, regardless of any stray parent field.
	for _, c := range courses {
		containers = append(containers, catalog.Container{
			ID:       c.ID,
			Type:     catalog.TypeCourse,
			Name:     c.Name,
			ParentID: nil,
			Order:    c.Order,
		})
	}

	// Folders: explicit parent wins, then owning subject, then course.
	for _, f := range folders {
		var parentID *string
		switch {
		case f.ParentID != nil && *f.ParentID != "":
			parentID = f.ParentID
		case f.SubjectID != nil && *f.SubjectID != "":
			parentID = f.SubjectID
		case f.CourseID != nil && *f.CourseID != "":
			parentID = f.CourseID
		}
		containers = append(containers, catalog.Container{
			ID:       f.ID,
			Type:     catalog.TypeFolder,
			Name:     f.Name,
			ParentID: parentID,
			Order:    f.Order,
		})
	}

	// Subjects: legacy folder reference wins over the owning course.
	for _, s := range subjects {
		var parentID *string
		switch {
		case s.FolderID != nil && *s.FolderID != "":
			parentID = s.FolderID
		case s.CourseID != nil && *s.CourseID != "":
			parentID = s.CourseID
		}
		containers = append(containers, catalog.Container{
			ID:       s.ID,
			Type:     catalog.TypeSubject,
			Name:     s.Name,
			ParentID: parentID,
			Order:    s.Order,
		})
	}

	return containers
}

// RootContainers returns the containers with no resolved parent.
func RootContainers(containers []catalog.Container) []catalog.Container {
	var roots []catalog.Container
	for _, c := range containers {
		if c.ParentID == nil {
			roots = append(roots, c)
		}
	}
	return roots
}

// ChildrenOf returns the direct children of parentID, any type.
func ChildrenOf(containers []catalog.Container, parentID string) []catalog.Container {
	var children []catalog.Container
	for _, c := range containers {
		if c.ParentID != nil && *c.ParentID == parentID {
			children = append(children, c)
		}
	}
	return children
}

// Node is the tagged variant handed to the presentation layer: exactly
// one of Container or Quiz is set, discriminated by Type.
type Node struct {
	Type      catalog.ItemType  `json:"type"`
	Container *catalog.Container `json:"container,omitempty"`
	Quiz      *catalog.Quiz      `json:"quiz,omitempty"`
}

// Ref returns the composite key of the wrapped item.
func (n Node) Ref() catalog.ItemRef {
	if n.Container != nil {
		return n.Container.Ref()
	}
	return catalog.ItemRef{Type: catalog.TypeQuiz, ID: n.Quiz.ID}
}

// TypedChildrenOf returns the children of a container, selecting the
// child kind by the container's type: courses hold subjects, subjects
// hold folders, folders hold subfolders followed by quizzes. Any other
// container type has no children.
func TypedChildrenOf(containerID string, containerType catalog.ItemType, containers []catalog.Container, quizzes []catalog.Quiz) []Node {
	var children []Node

	pick := func(childType catalog.ItemType) {
		for i := range containers {
			c := &containers[i]
			if c.Type == childType && c.ParentID != nil && *c.ParentID == containerID {
				children = append(children, Node{Type: childType, Container: c})
			}
		}
	}

	switch containerType {
	case catalog.TypeCourse:
		pick(catalog.TypeSubject)
	case catalog.TypeSubject:
		pick(catalog.TypeFolder)
	case catalog.TypeFolder:
		pick(catalog.TypeFolder) // subfolders precede quizzes
		for i := range quizzes {
			q := &quizzes[i]
			if q.FolderID != nil && *q.FolderID == containerID {
				children = append(children, Node{Type: catalog.TypeQuiz, Quiz: q})
			}
		}
	}

	return children
}

// isDescendant reports whether candidateID lies inside the subtree
// rooted at rootID, walking resolved parent pointers. The walk is
// bounded by the container count so a malformed parent loop in stored
// data cannot hang it.
func isDescendant(containers []catalog.Container, rootID, candidateID string) bool {
	byID := make(map[string]*catalog.Container, len(containers))
	for i := range containers {
		byID[containers[i].ID] = &containers[i]
	}

	currentID := candidateID
	for steps := 0; steps <= len(containers); steps++ {
		if currentID == rootID {
			return true
		}
		c, ok := byID[currentID]
		if !ok || c.ParentID == nil {
			return false
		}
		currentID = *c.ParentID
	}
	return false
}
