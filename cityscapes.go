package dsprep

import (
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Corrupted Cityscapes frames that are never listed.
var cityscapesIgnore = []string{
	// cityscapes_extra
	"troisdorf_000000_000073",
	// cityscapes_video, left camera
	"frankfurt_000000_006434", "frankfurt_000001_023592", "frankfurt_000001_038767",
	// cityscapes_video, right camera
	"frankfurt_000000_022587", "frankfurt_000001_026781", "frankfurt_000001_059933",
	"frankfurt_000001_059934", "frankfurt_000001_060157", "frankfurt_000001_070159",
	"frankfurt_000001_083533",
}

// Cities whose sequences are annotated at a frame that drifts with the sequence counter.
var cityscapesShiftedCities = []string{
	"mainz", "bielefeld", "bochum", "frankfurt", "hamburg", "hanover", "krefeld", "strasbourg",
	"monchengladbach",
}

func cityscapesLayout(dataset string) *Layout {
	segmentation := CategorySpec{
		Name:    "segmentation",
		Ext:     ".png",
		Filter:  []string{"gtFine"},
		Exclude: []string{"color", "instance"},
	}
	if strings.Contains(dataset, "extra") {
		segmentation.Filter = []string{"gtCoarse", "train_extra"}
	}
	categories := []CategorySpec{pngCategory("color", "leftImg8bit"), pngCategory("color_right", "rightImg8bit")}
	if !strings.Contains(dataset, "video") {
		categories = append(categories, pngCategory("depth", "disparity"), segmentation)
	}

	return &Layout{
		Categories:    categories,
		RemoveDirs:    []string{"foggy", "_rain"},
		Ignore:        cityscapesIgnore,
		StereoReplace: map[string]string{"left": "right"},
		Strategy: IndexStrategy{
			FrameKey: cityscapesFrameKey,
			Adjacent: cityscapesAdjacent(cityscapesIgnore),
			Identity: cityscapesIdentity,
		},
		SideData: cityscapesSideData,
	}
}

// cityscapesFrameKey parses <city>_<sequence>_<frame>_<type>.png.
func cityscapesFrameKey(_, rel string) (FrameKey, error) {
	parts, err := underscoreParts(rel, 3)
	if err != nil {
		return FrameKey{}, err
	}
	frame, err := partAt(parts, 2, rel)
	if err != nil {
		return FrameKey{}, err
	}
	return FrameKey{Sequence: parts[0] + "_" + parts[1], Frame: frame}, nil
}

// cityscapesAdjacent tolerates a gap of two or three frames where a corrupted frame was removed.
// Only frame numbers are compared.
func cityscapesAdjacent(ignore []string) func(prev, cur FrameKey) bool {
	skipped := make(map[string]bool, len(ignore))
	for _, s := range ignore {
		skipped[s] = true
	}
	return func(prev, cur FrameKey) bool {
		if skipped[fmt.Sprintf("%s_%06d", cur.Sequence, cur.Frame-1)] {
			return prev.Frame == cur.Frame-2 || prev.Frame == cur.Frame-3
		}
		return prev.Frame == cur.Frame-1
	}
}

// cityscapesIdentity strips the category directory and the type suffix, segmentation files carry
// two suffixes, e.g. _gtFine_labelIds.
func cityscapesIdentity(category, rel string) (string, error) {
	rel = dropFirstComponent(rel)
	if strings.Contains(category, "segmentation") {
		return trimParts(rel, 2), nil
	}
	return trimParts(rel, 1), nil
}

type cityscapesCamera struct {
	Intrinsic struct {
		Fx float64 `json:"fx"`
		Fy float64 `json:"fy"`
		U0 float64 `json:"u0"`
		V0 float64 `json:"v0"`
	} `json:"intrinsic"`
}

type cityscapesVehicle struct {
	Speed float64 `json:"speed"`
}

// cityscapesSideData adds camera intrinsics, timestamps and velocities.
func cityscapesSideData(b *Builder, m *Manifest) error {
	color := &m.Categories[0]
	if len(color.Files) == 0 {
		return nil
	}

	if ok, _ := afero.DirExists(b.fs, b.abs("camera")); ok {
		if err := cityscapesIntrinsics(b, m); err != nil {
			return err
		}
	}

	var timeFolders, timeFiles, velFolders, velFiles []string
	var err error
	timestamps, velocity := false, true
	switch {
	case dirExists(b, "timestamp_sequence"):
		timestamps = true
		if timeFolders, timeFiles, err = b.relFilelist([]string{"timestamp_sequence"}, ".txt"); err != nil {
			return err
		}
		if velFolders, velFiles, err = b.relFilelist([]string{"vehicle_sequence"}, ".json"); err != nil {
			return err
		}
	case dirExists(b, "timestamp_allFrames"):
		timestamps = true
		if timeFolders, timeFiles, err = b.relFilelist([]string{"timestamp_allFrames"}, ".txt"); err != nil {
			return err
		}
		if velFolders, velFiles, err = b.relFilelist([]string{"vehicle_allFrames"}, ".json"); err != nil {
			return err
		}
	case dirExists(b, "vehicle"):
		if velFolders, velFiles, err = b.relFilelist([]string{"vehicle"}, ".json"); err != nil {
			return err
		}
	default:
		velocity = false
	}

	if timestamps {
		times := make([]Value, 0, len(timeFiles))
		for _, f := range timeFiles {
			data, err := afero.ReadFile(b.fs, b.abs(f))
			if err != nil {
				return errors.Wrapf(err, "cannot read timestamp %q", f)
			}
			ns, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
			if err != nil {
				return errors.Wrapf(ErrMalformedName, "invalid timestamp in %q", f)
			}
			times = append(times, ScalarValue(ns/1e9))
		}
		appendNumeric(m, "timestamp", ".txt", []string{"timestamp"}, timeFolders, color.Files,
			color.Positions, times)
		color = &m.Categories[0]
	}

	if !velocity {
		return nil
	}
	velocities := make([]Value, 0, len(velFiles))
	for _, f := range velFiles {
		var v cityscapesVehicle
		if err := readJSON(b.fs, b.abs(f), &v); err != nil {
			return err
		}
		velocities = append(velocities, ScalarValue(v.Speed))
	}
	appendNumeric(m, "velocity", ".json", []string{"vehicle"}, velFolders, color.Files, color.Positions,
		velocities)
	return nil
}

// cityscapesIntrinsics reads camera/<frame>_camera.json for every color frame. The right camera
// uses the same matrix.
func cityscapesIntrinsics(b *Builder, m *Manifest) error {
	color := &m.Categories[0]
	sequence := strings.Contains(firstComponent(color.Files[0].Path()), "sequence")

	values := make([]Value, 0, len(color.Files))
	counter := 0
	for _, f := range color.Files {
		key, err := cityscapesIdentity(color.Name, f.Path())
		if err != nil {
			return err
		}
		switch {
		case sequence && containsAny(key, cityscapesShiftedCities):
			parts := strings.Split(key, "_")
			frame, err := partAt(parts, -1, key)
			if err != nil {
				return err
			}
			parts[len(parts)-1] = fmt.Sprintf("%06d", frame+19-counter)
			counter++
			if counter%30 == 0 {
				counter = 0
			}
			key = strings.Join(parts, "_")
		case sequence:
			if len(key) < 2 {
				return errors.Wrapf(ErrMalformedName, "invalid sequence frame %q", key)
			}
			key = key[:len(key)-2] + "19"
		}

		var cam cityscapesCamera
		if err := readJSON(b.fs, b.abs(path.Join("camera", key+"_camera.json")), &cam); err != nil {
			return err
		}
		in := cam.Intrinsic
		values = append(values, MatrixValue(rows(cameraMatrix(in.Fx, in.Fy, in.U0, in.V0))))
	}

	var rightFolders []string
	if len(m.Categories) > 1 {
		rightFolders = m.Categories[1].Folders
	}
	appendNumeric(m, "camera_intrinsics", ".txt", []string{"camera"}, color.Folders, color.Files,
		color.Positions, values)
	color = &m.Categories[0]
	appendNumeric(m, "camera_intrinsics_right", ".txt", []string{"camera"}, rightFolders, color.Files,
		color.Positions, values)
	return nil
}

func dirExists(b *Builder, rel string) bool {
	ok, err := afero.DirExists(b.fs, b.abs(rel))
	return err == nil && ok
}

// readJSON decodes the file at p into v.
func readJSON(fs afero.Fs, p string, v interface{}) error {
	data, err := afero.ReadFile(fs, p)
	if err != nil {
		return errors.Wrapf(err, "cannot read %q", p)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "cannot parse %q", p)
	}
	return nil
}
