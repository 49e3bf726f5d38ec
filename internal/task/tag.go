// Package task provides the task model and dependency rules for sheetboard.
package task

// Tag is a shared categorization label. Tasks reference tags by name;
// the tag list supplies display color and keeps names consistent
// across clients.
type Tag struct {
	// ID is the tag's identifier in the remote store.
	ID string `yaml:"id" json:"id"`

	// Name is the unique display name tasks reference.
	Name string `yaml:"name" json:"name"`

	// Color is a display hint (hex string), optional.
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

// FindTag returns the tag with the given name, or nil.
func FindTag(tags []*Tag, name string) *Tag {
	for _, tg := range tags {
		if tg.Name == name {
			return tg
		}
	}
	return nil
}
