// Package catalog holds the static subject and badge reference data shared
// by every profile. The catalogs are compile-time constants: lookups by id
// return (value, ok) and there is no runtime registry to miss a key in.
package catalog

// Subject describes one entry of the fixed subject catalog.
type Subject struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

var subjects = []Subject{
	{ID: "math", Name: "Mathematics", Icon: "calculator", Color: "#4A90E2"},
	{ID: "science", Name: "Science", Icon: "flask", Color: "#2ECC71"},
	{ID: "english", Name: "English", Icon: "book-open", Color: "#9B59B6"},
	{ID: "history", Name: "History", Icon: "landmark", Color: "#F39C12"},
	{ID: "geography", Name: "Geography", Icon: "globe", Color: "#16A085"},
	{ID: "languages", Name: "Languages", Icon: "message-circle", Color: "#E74C3C"},
	{ID: "arts", Name: "Arts", Icon: "palette", Color: "#8E44AD"},
	{ID: "other", Name: "Other", Icon: "more-horizontal", Color: "#7F8C8D"},
}

// Subjects returns the full subject catalog in display order.
func Subjects() []Subject {
	result := make([]Subject, len(subjects))
	copy(result, subjects)
	return result
}

// SubjectByID returns the subject with the given id.
func SubjectByID(id string) (Subject, bool) {
	for _, s := range subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// SubjectName returns the display name for a subject id, falling back to
// the raw id when the id is not in the catalog.
func SubjectName(id string) string {
	if s, ok := SubjectByID(id); ok {
		return s.Name
	}
	return id
}

// SubjectIDs returns the ids of all catalog subjects in display order.
func SubjectIDs() []string {
	ids := make([]string, len(subjects))
	for i, s := range subjects {
		ids[i] = s.ID
	}
	return ids
}
