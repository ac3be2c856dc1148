package ingredient

import (
	"encoding/json"
	"fmt"
)

// Entry is one ingredient as authored on a recipe. The catalog stores
// ingredients in two historical shapes: a bare string ("salt") and a
// structured object ({"name": "salt", "is_main": false}). Bare strings
// predate the is_main flag and always denoted essential ingredients, so
// they decode with IsMain set.
type Entry struct {
	Name   string
	IsMain bool

	// bare records which wire shape produced this entry so that
	// re-encoding a recipe writes it back unchanged.
	bare bool
}

// Bare returns an entry in the legacy bare-string shape.
func Bare(name string) Entry {
	return Entry{Name: name, IsMain: true, bare: true}
}

// Structured returns an entry in the object shape.
func Structured(name string, isMain bool) Entry {
	return Entry{Name: name, IsMain: isMain}
}

type structuredEntry struct {
	Name   string `json:"name"`
	IsMain bool   `json:"is_main"`
}

// UnmarshalJSON accepts either wire shape. Anything else is an error;
// the catalog has never stored other forms.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = Bare(s)
		return nil
	}

	var obj structuredEntry
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("ingredient entry must be a string or an object: %w", err)
	}
	*e = Structured(obj.Name, obj.IsMain)
	return nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.bare {
		return json.Marshal(e.Name)
	}
	return json.Marshal(structuredEntry{Name: e.Name, IsMain: e.IsMain})
}
