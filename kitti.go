package dsprep

// KITTI specific functionality.

import (
	"encoding/csv"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gonum.org/v1/gonum/floats"
)

// Line indices of the K_02 and K_03 matrices in calib_cam_to_cam.txt.
const (
	kittiCalibLeftLine  = 19
	kittiCalibRightLine = 27
	// Length of the "K_02: " prefix.
	kittiCalibPrefixLen = 6
)

// Frame ranges of the odometry pose files within their raw drives, in the order the pose files are
// listed.
var kittiOdometryFrames = [][2]int{
	{0, 270}, {0, 2760}, {0, 1100}, {0, 1100}, {1100, 5170}, {0, 1590}, {0, 1200}, {0, 4540},
	{0, 4660}, {0, 1100},
}

func kittiLayout() *Layout {
	categories := []CategorySpec{
		pngCategory("color", "Raw_data", "image_02", "data"),
		pngCategory("color_right", "Raw_data", "image_03", "data"),
	}
	for _, variant := range []string{"", "_improved", "_processed", "_processed_improved", "_completed",
		"_completed_improved"} {
		dir := "Depth" + variant + "/"
		categories = append(categories,
			pngCategory("depth"+variant, dir, "image_02", "data"),
			pngCategory("depth"+variant+"_right", dir, "image_03", "data"))
	}

	return &Layout{
		Categories:    categories,
		RemoveDirs:    []string{"image_00", "image_01", "velodyne_points"},
		StereoReplace: map[string]string{"image_02": "image_03"},
		Strategy:      IndexStrategy{FrameKey: numericStem, Identity: withoutTop},
		SideData:      kittiSideData,
	}
}

func kitti2015Layout(dataset string) *Layout {
	categories := []CategorySpec{pngCategory("color", "image_2"), pngCategory("color_right", "image_3")}
	var remove []string
	if dataset == "kitti_2015" {
		categories = append(categories,
			pngCategory("depth", "depth_occ_0"),
			pngCategory("depth_right", "depth_occ_1"),
			pngCategory("segmentation", "semantic"),
			pngCategory("flow", "flow_occ"),
			pngCategory("flow_noc", "flow_noc"))
		remove = []string{"viz_flow"}
	}

	return &Layout{
		Categories: categories,
		RemoveDirs: remove,
		Strategy: IndexStrategy{
			// 000000_10.png: scene 000000, frame 10.
			FrameKey: func(_, rel string) (FrameKey, error) {
				parts, err := underscoreParts(rel, 2)
				if err != nil {
					return FrameKey{}, err
				}
				frame, err := partAt(parts, 1, rel)
				if err != nil {
					return FrameKey{}, err
				}
				return FrameKey{Sequence: parts[0], Frame: frame}, nil
			},
			// training/image_2/000000_10.png is identified by training/000000_10.png.
			Identity: func(_, rel string) (string, error) {
				return path.Join(path.Base(path.Dir(path.Dir(rel))), path.Base(rel)), nil
			},
		},
		SideData: kitti2015SideData,
	}
}

// calibCache reads calibration files once.
type calibCache struct {
	fs    afero.Fs
	lines map[string][]string
}

func newCalibCache(fs afero.Fs) *calibCache {
	return &calibCache{fs: fs, lines: make(map[string][]string)}
}

// matrix parses the 3x3 matrix in line i of the calibration file p.
func (c *calibCache) matrix(p string, i int) ([][]float64, error) {
	lines, ok := c.lines[p]
	if !ok {
		var err error
		if lines, err = readLines(c.fs, p); err != nil {
			return nil, err
		}
		c.lines[p] = lines
	}
	if i >= len(lines) {
		return nil, errors.Wrapf(ErrConsistency, "calibration file %q has %d lines, expected at least %d",
			p, len(lines), i+1)
	}

	line := lines[i]
	if len(line) < kittiCalibPrefixLen {
		return nil, errors.Wrapf(ErrConsistency, "invalid calibration line %d in %q", i, p)
	}
	values, err := parseFloats(strings.Fields(line[kittiCalibPrefixLen:]))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid calibration line %d in %q", i, p)
	}
	m, err := embed3x3(values)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid calibration line %d in %q", i, p)
	}
	return rows(m), nil
}

func parseFloats(fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// appendStereoIntrinsics adds the camera_intrinsics categories for the left and right color
// camera. The right category lists the right images if there is one per left image.
func appendStereoIntrinsics(m *Manifest, filter []string, left, right []Value) {
	color := m.Categories[0]
	rightFolders, rightFiles := []string(nil), color.Files
	if len(m.Categories) > 1 {
		rightFolders = m.Categories[1].Folders
		if len(m.Categories[1].Files) == len(color.Files) {
			rightFiles = m.Categories[1].Files
		}
	}
	appendNumeric(m, "camera_intrinsics", ".txt", filter, color.Folders, color.Files, color.Positions, left)
	appendNumeric(m, "camera_intrinsics_right", ".txt", filter, rightFolders, rightFiles, color.Positions,
		right)
}

// kittiSideData adds the camera intrinsics, timestamps, velocities and odometry poses.
func kittiSideData(b *Builder, m *Manifest) error {
	color := m.Categories[0]
	calib := newCalibCache(b.fs)
	left := make([]Value, 0, len(color.Files))
	right := make([]Value, 0, len(color.Files))
	for _, f := range color.Files {
		rel := dropFirstComponent(f.Path())
		base := firstComponent(rel)
		var l, r [][]float64
		var err error
		if strings.Contains(rel, "test") {
			// Test frames come with one intrinsics file per image.
			p := b.abs(path.Join("Raw_data", base, "intrinsics", strings.Replace(path.Base(rel), "png", "txt", 1)))
			if l, err = calib.matrix(p, 0); err != nil {
				return err
			}
			r = l
		} else {
			p := b.abs(path.Join("Raw_data", base, "calib_cam_to_cam.txt"))
			if l, err = calib.matrix(p, kittiCalibLeftLine); err != nil {
				return err
			}
			if r, err = calib.matrix(p, kittiCalibRightLine); err != nil {
				return err
			}
		}
		left = append(left, MatrixValue(l))
		right = append(right, MatrixValue(r))
	}
	appendStereoIntrinsics(m, []string{"Raw_data"}, left, right)

	if err := kittiOxts(b, m, color); err != nil {
		return err
	}
	return kittiPoses(b, m, color)
}

// kittiOxts reads the timestamps and velocities of all drives from Raw_data/.../oxts.
func kittiOxts(b *Builder, m *Manifest, color Category) error {
	folders, _, err := b.relFilelist([]string{"Raw_data", "oxts"}, ".txt")
	if err != nil {
		return err
	}
	var timeFolders, velFolders []string
	for _, f := range folders {
		switch {
		case path.Base(f) == "oxts":
			timeFolders = append(timeFolders, f)
		case path.Base(f) == "data" && path.Base(path.Dir(f)) == "oxts":
			velFolders = append(velFolders, f)
		}
	}

	var times, velocities []Value
	for _, f := range timeFolders {
		p := b.abs(path.Join(f, "timestamps.txt"))
		if ok, _ := afero.Exists(b.fs, p); !ok {
			continue
		}
		lines, err := readLines(b.fs, p)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			t, err := parseClock(line)
			if err != nil {
				return errors.Wrapf(err, "invalid timestamp in %q", p)
			}
			times = append(times, ScalarValue(t))
		}
	}
	for _, f := range velFolders {
		files, err := filesByExtInDir(b.fs, b.abs(f), ".txt")
		if err != nil {
			return err
		}
		sortFold(files)
		for _, p := range files {
			lines, err := readLines(b.fs, p)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				return errors.Wrapf(ErrConsistency, "empty oxts file %q", p)
			}
			fields, err := parseFloats(strings.Fields(lines[0]))
			if err != nil || len(fields) < 11 {
				return errors.Wrapf(ErrConsistency, "invalid oxts record in %q", p)
			}
			// vf, vl and vu
			velocities = append(velocities, ScalarValue(floats.Norm(fields[8:11], 2)))
		}
	}

	filter := []string{"Raw_data", "oxts"}
	appendNumeric(m, "timestamp", ".txt", filter, timeFolders, color.Files, color.Positions, times)
	appendNumeric(m, "velocity", ".txt", filter, velFolders, color.Files, color.Positions, velocities)
	return nil
}

// parseClock converts the time of day of "2011-09-26 13:02:25.964389445" to seconds.
func parseClock(line string) (float64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, errors.Errorf("missing time of day in %q", line)
	}
	hms := strings.Split(fields[1], ":")
	if len(hms) != 3 {
		return 0, errors.Errorf("invalid time of day %q", fields[1])
	}
	v, err := parseFloats(hms)
	if err != nil {
		return 0, err
	}
	return v[0]*3600 + v[1]*60 + v[2], nil
}

// kittiPoses matches the odometry ground truth poses to the color frames of their raw drive. The
// pose files are expected in the order of the odometry sequences.
func kittiPoses(b *Builder, m *Manifest, color Category) error {
	folders, files, err := b.relFilelist([]string{"poses"}, ".txt")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	var poses []Value
	var drives []string
	var keys []FrameKey
	for i, f := range files {
		if i >= len(kittiOdometryFrames) {
			break
		}
		parts := strings.Split(f, "/")
		if len(parts) < 3 {
			return errors.Wrapf(ErrMalformedName, "cannot derive the drive of pose file %q", f)
		}
		drive := parts[len(parts)-3]
		r := kittiOdometryFrames[i]
		for n := r[0]; n <= r[1]; n++ {
			drives = append(drives, drive)
			keys = append(keys, FrameKey{Sequence: drive, Frame: n})
		}

		lines, err := readLines(b.fs, b.abs(f))
		if err != nil {
			return err
		}
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			v, err := parseFloats(strings.Fields(line))
			if err != nil || len(v) != 12 {
				return errors.Wrapf(ErrConsistency, "invalid pose in %q", f)
			}
			poses = append(poses, MatrixValue([][]float64{v[0:4], v[4:8], v[8:12]}))
		}
	}
	before, after := sequenceBounds(keys, consecutiveFrames)

	var matched []Value
	var positions []Position
	counter := 0
	for i, f := range color.Files {
		if counter >= len(keys) || counter >= len(poses) {
			break
		}
		parts := strings.Split(f.Path(), "/")
		if len(parts) < 4 {
			continue
		}
		frame, err := strconv.Atoi(stem(f.Path()))
		if err != nil {
			return errors.Wrapf(ErrMalformedName, "file name %q is not a frame number", f.Path())
		}
		if parts[len(parts)-4] != drives[counter] || frame != keys[counter].Frame {
			continue
		}
		positions = append(positions, Position{
			GlobalID: color.Positions[i].GlobalID,
			Before:   before[counter],
			After:    after[counter],
			LocalID:  counter,
		})
		matched = append(matched, f)
		counter++
	}
	appendNumeric(m, "poses", ".txt", []string{"Raw_data"}, folders, matched, positions, poses[:counter])
	return nil
}

// kitti2015SideData adds the camera intrinsics if the calib_cam_to_cam directories are present.
func kitti2015SideData(b *Builder, m *Manifest) error {
	folders, _, err := b.relFilelist([]string{"calib_cam_to_cam"}, ".txt")
	if err != nil || len(folders) == 0 {
		return err
	}

	color := m.Categories[0]
	calib := newCalibCache(b.fs)
	left := make([]Value, 0, len(color.Files))
	right := make([]Value, 0, len(color.Files))
	for _, f := range color.Files {
		rel := f.Path()
		scene := strings.Split(path.Base(rel), "_")[0]
		p := b.abs(path.Join(path.Dir(path.Dir(rel)), "calib_cam_to_cam", scene+".txt"))
		l, err := calib.matrix(p, kittiCalibLeftLine)
		if err != nil {
			return err
		}
		r, err := calib.matrix(p, kittiCalibRightLine)
		if err != nil {
			return err
		}
		left = append(left, MatrixValue(l))
		right = append(right, MatrixValue(r))
	}
	appendStereoIntrinsics(m, []string{"calib_cam_to_cam"}, left, right)
	return nil
}

// KITTIFiles reads the split from the lists in <output>/splits. The split of a list is given by its
// file name, the first column names the files relative to the category directory.
type KITTIFiles struct{}

func (KITTIFiles) CreateSplits(b *SplitBuilder) (map[SplitName]*Manifest, error) {
	dir := filepath.Join(b.output, "splits")
	infos, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		return nil, errors.Wrapf(ErrConfig, "cannot read split lists in %q: %v", dir, err)
	}

	splits := make(map[SplitName]*Manifest)
	for _, info := range infos {
		split, ok := splitFromName(info.Name())
		if info.IsDir() || !ok {
			continue
		}
		p := filepath.Join(dir, info.Name())
		keep, err := readSplitList(b.fs, p)
		if err != nil {
			return nil, err
		}

		m := newSplitManifest(len(b.basic.Categories))
		for i := range b.basic.Categories {
			c, err := kittiSplitCategory(&b.basic.Categories[i], keep)
			if err != nil {
				return nil, errors.WithMessagef(err, "split list %q", p)
			}
			m.Categories = append(m.Categories, c)
		}
		splits[split] = m
	}
	return splits, nil
}

// kittiSplitCategory keeps the entries of c listed in keep. Right camera frames may be listed by
// their left camera path.
func kittiSplitCategory(c *Category, keep []string) (Category, error) {
	paths := c.Paths()
	lookup := make(map[string][]int, len(paths))
	for j, p := range paths {
		k := dropFirstComponent(p)
		lookup[k] = append(lookup[k], j)
	}

	var idx []int
	dirs := make(map[string]bool)
	for _, f := range keep {
		matches, ok := lookup[f]
		if !ok {
			matches = lookup[strings.ReplaceAll(f, "image_02", "image_03")]
		}
		if len(matches) == 0 {
			continue
		}
		if len(matches) > 1 {
			return Category{}, errors.Wrapf(ErrConsistency, "file %q is not unique in category %q", f, c.Name)
		}
		idx = append(idx, matches[0])
		dirs[path.Dir(paths[matches[0]])] = true
	}

	folders := make([]string, 0, len(dirs))
	for d := range dirs {
		folders = append(folders, d)
	}
	sort.Strings(folders)
	return subset(c, idx, folders), nil
}

// readSplitList returns the first column of the comma separated split list at p with forward
// slashes.
func readSplitList(fs afero.Fs, p string) (files []string, err error) {
	f, err := fs.Open(p)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open split list %q", p)
	}
	defer logClose(f, p)

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse split list %q", p)
	}
	for _, rec := range records {
		if len(rec) == 0 || rec[0] == "" {
			continue
		}
		files = append(files, strings.ReplaceAll(strings.TrimSpace(rec[0]), "\\", "/"))
	}
	return files, nil
}
