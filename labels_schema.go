package dsprep

// JSON label schema files, for datasets without built-in label definitions.

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// schemaColor is either a packed 0xRRGGBB integer or an [r, g, b] array.
type schemaColor RGB

func (c *schemaColor) UnmarshalJSON(b []byte) error {
	var packed uint32
	if err := json.Unmarshal(b, &packed); err == nil {
		*c = schemaColor(PackedColor(packed))
		return nil
	}
	var rgb [3]uint8
	if err := json.Unmarshal(b, &rgb); err != nil {
		return errors.Wrapf(err, "invalid color %s", b)
	}
	*c = schemaColor(rgb)
	return nil
}

// SchemaLabel is a single label within a schema file.
type SchemaLabel struct {
	Name         string      `json:"name"`
	ID           int         `json:"id"`
	TrainID      int         `json:"trainId"`
	Category     string      `json:"category,omitempty"`
	CategoryID   int         `json:"categoryId,omitempty"`
	HasInstances bool        `json:"hasInstances,omitempty"`
	IgnoreInEval bool        `json:"ignoreInEval,omitempty"`
	Color        schemaColor `json:"color"`
}

// LabelSchema defines the structure of a label schema file.
type LabelSchema struct {
	Name   string        `json:"name"`
	Labels []SchemaLabel `json:"labels"`
}

// LoadLabelSchema reads and parses the label schema at path.
func LoadLabelSchema(fs afero.Fs, path string) (*LabelTable, error) {
	enc, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var schema LabelSchema
	err = json.Unmarshal(enc, &schema)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse label schema from %q", path)
	}

	// Convert to the label table.
	labels := make([]Label, len(schema.Labels))
	for i, l := range schema.Labels {
		labels[i] = Label{
			Name:         l.Name,
			ID:           l.ID,
			TrainID:      l.TrainID,
			Category:     l.Category,
			CategoryID:   l.CategoryID,
			HasInstances: l.HasInstances,
			IgnoreInEval: l.IgnoreInEval,
			Color:        RGB(l.Color),
		}
	}
	if schema.Name == "" {
		schema.Name = path
	}
	return NewLabelTable(schema.Name, labels)
}
