package dsprep

// Segmentation label definitions and the conversions between label ids, train ids and colors.

import (
	"image"
	"image/color"
	"strings"

	"github.com/pkg/errors"
)

// IgnoreTrainID marks pixels that are excluded during training.
const IgnoreTrainID = 255

// RGB is an 8-bit color.
type RGB [3]uint8

// PackedColor decomposes the packed color 0xRRGGBB.
func PackedColor(c uint32) RGB {
	return RGB{uint8(c >> 16 & 255), uint8(c >> 8 & 255), uint8(c & 255)}
}

// Label defines a single segmentation class.
type Label struct {
	Name         string
	ID           int // Value in the ground truth images, -1 if the label never appears.
	TrainID      int // Value used for training, IgnoreTrainID to ignore the label.
	Category     string
	CategoryID   int
	HasInstances bool
	IgnoreInEval bool
	Color        RGB
}

// LabelTable is an immutable list of label definitions.
type LabelTable struct {
	name   string
	labels []Label
}

// NewLabelTable validates labels and returns a table holding a copy of them.
func NewLabelTable(name string, labels []Label) (*LabelTable, error) {
	for _, l := range labels {
		if l.TrainID < 0 || l.TrainID > 255 {
			return nil, errors.Wrapf(ErrConfig, "label %q of %q has train id %d outside [0, 255]",
				l.Name, name, l.TrainID)
		}
	}
	return &LabelTable{name: name, labels: append([]Label(nil), labels...)}, nil
}

// Name returns the name of the table.
func (t *LabelTable) Name() string { return t.name }

// Labels returns a copy of all labels in definition order.
func (t *LabelTable) Labels() []Label {
	return append([]Label(nil), t.labels...)
}

// ByName maps label names to labels. Later definitions replace earlier ones.
func (t *LabelTable) ByName() map[string]Label {
	m := make(map[string]Label, len(t.labels))
	for _, l := range t.labels {
		m[l.Name] = l
	}
	return m
}

// ByID maps label ids to labels. Later definitions replace earlier ones.
func (t *LabelTable) ByID() map[int]Label {
	m := make(map[int]Label, len(t.labels))
	for _, l := range t.labels {
		m[l.ID] = l
	}
	return m
}

// ByTrainID maps train ids to labels. The first definition of a train id wins.
func (t *LabelTable) ByTrainID() map[int]Label {
	m := make(map[int]Label, len(t.labels))
	for i := len(t.labels) - 1; i >= 0; i-- {
		m[t.labels[i].TrainID] = t.labels[i]
	}
	return m
}

// ByCategory groups the labels by their category.
func (t *LabelTable) ByCategory() map[string][]Label {
	m := make(map[string][]Label)
	for _, l := range t.labels {
		m[l.Category] = append(m[l.Category], l)
	}
	return m
}

// ResolveGroupName returns the label name denoted by name, which may be a group such as
// "cargroup". Groups only resolve to labels that have instances.
func (t *LabelTable) ResolveGroupName(name string) (string, bool) {
	byName := t.ByName()
	if _, ok := byName[name]; ok {
		return name, true
	}
	if !strings.HasSuffix(name, "group") {
		return "", false
	}
	name = strings.TrimSuffix(name, "group")
	l, ok := byName[name]
	if !ok || !l.HasInstances {
		return "", false
	}
	return name, true
}

// DecodeMode selects the meaning of the values passed to Decode.
type DecodeMode int

const (
	DecodeID DecodeMode = iota
	DecodeTrainID
)

func (t *LabelTable) colorLookup(mode DecodeMode) map[int]RGB {
	var labels map[int]Label
	if mode == DecodeTrainID {
		labels = t.ByTrainID()
	} else {
		labels = t.ByID()
	}
	colors := make(map[int]RGB, len(labels))
	for v, l := range labels {
		colors[v] = l.Color
	}
	return colors
}

// Decode maps a mask of label ids or train ids to colors. Unknown values are black.
func (t *LabelTable) Decode(mask [][]int, mode DecodeMode) [][]RGB {
	colors := t.colorLookup(mode)
	out := make([][]RGB, len(mask))
	for y, row := range mask {
		out[y] = make([]RGB, len(row))
		for x, v := range row {
			out[y][x] = colors[v]
		}
	}
	return out
}

// DecodeImage colors the gray mask img.
func (t *LabelTable) DecodeImage(img *image.Gray, mode DecodeMode) *image.RGBA {
	colors := t.colorLookup(mode)
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := colors[int(img.GrayAt(x, y).Y)]
			out.SetRGBA(x, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: 255})
		}
	}
	return out
}

// LabelsMode describes how the ground truth images of a dataset encode labels.
type LabelsMode string

const (
	FromID      LabelsMode = "fromid"
	FromRGB     LabelsMode = "fromrgb"
	FromTrainID LabelsMode = "fromtrainid"
)

// TrainIDLookup converts ground truth pixels to train ids.
type TrainIDLookup struct {
	mode    LabelsMode
	byID    map[int]uint8
	byColor map[RGB]uint8
}

// TrainIDLookup returns the conversion for ground truth images encoded according to mode. Values
// without a label map to IgnoreTrainID.
func (t *LabelTable) TrainIDLookup(mode LabelsMode) (*TrainIDLookup, error) {
	l := &TrainIDLookup{mode: mode}
	switch mode {
	case FromID:
		l.byID = make(map[int]uint8, len(t.labels))
		for id, label := range t.ByID() {
			l.byID[id] = uint8(label.TrainID)
		}
	case FromRGB:
		l.byColor = make(map[RGB]uint8, len(t.labels))
		for _, label := range t.labels {
			if _, ok := l.byColor[label.Color]; !ok {
				l.byColor[label.Color] = uint8(label.TrainID)
			}
		}
	case FromTrainID:
	default:
		return nil, errors.Wrapf(ErrConfig, "unknown labels mode %q", mode)
	}
	return l, nil
}

// FromValue converts a label id, or passes a train id through.
func (l *TrainIDLookup) FromValue(v int) uint8 {
	if l.mode == FromTrainID {
		if v < 0 || v > 255 {
			return IgnoreTrainID
		}
		return uint8(v)
	}
	if id, ok := l.byID[v]; ok {
		return id
	}
	return IgnoreTrainID
}

// FromColor converts a label color.
func (l *TrainIDLookup) FromColor(c RGB) uint8 {
	if id, ok := l.byColor[c]; ok {
		return id
	}
	return IgnoreTrainID
}

// Convert returns the train id image of the ground truth image img. Paletted images are read by
// palette index, other images by gray value unless colors are expected.
func (l *TrainIDLookup) Convert(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(b)
	paletted, isPaletted := img.(*image.Paletted)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var v uint8
			switch {
			case l.mode == FromRGB:
				c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
				v = l.FromColor(RGB{c.R, c.G, c.B})
			case isPaletted:
				v = l.FromValue(int(paletted.ColorIndexAt(x, y)))
			default:
				switch g := img.(type) {
				case *image.Gray16:
					v = l.FromValue(int(g.Gray16At(x, y).Y))
				default:
					v = l.FromValue(int(color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y))
				}
			}
			out.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return out
}
