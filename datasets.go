package dsprep

import (
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LayoutFor returns the layout of the named dataset.
func LayoutFor(dataset string) (*Layout, error) {
	switch dataset {
	case "cityscapes", "cityscapes_video", "cityscapes_sequence", "cityscapes_extra", "cityscapes_part":
		return cityscapesLayout(dataset), nil
	case "kitti":
		return kittiLayout(), nil
	case "kitti_2012", "kitti_2015":
		return kitti2015Layout(dataset), nil
	case "virtual_kitti":
		return virtualKITTILayout(), nil
	case "mapillary", "mapillary_by_ID":
		return mapillaryLayout(), nil
	case "gta5":
		return gta5Layout(), nil
	case "synthia":
		return synthiaLayout(), nil
	case "bdd100k":
		return bdd100kLayout(), nil
	case "voc2012":
		return voc2012Layout(), nil
	case "a2d2":
		return a2d2Layout(), nil
	case "lostandfound":
		return lostAndFoundLayout(), nil
	case "camvid":
		return camVidLayout(), nil
	case "make3d":
		return make3dLayout(), nil
	}
	return nil, errors.Wrapf(ErrConfig, "dataset %q not supported", dataset)
}

func pngCategory(name string, filter ...string) CategorySpec {
	return CategorySpec{Name: name, Ext: ".png", Filter: filter}
}

func jpgCategory(name string, filter ...string) CategorySpec {
	return CategorySpec{Name: name, Ext: ".jpg", Filter: filter}
}

// underscoreParts splits the file name stem of rel at underscores and requires at least n parts.
func underscoreParts(rel string, n int) ([]string, error) {
	parts := strings.Split(stem(rel), "_")
	if len(parts) < n {
		return nil, errors.Wrapf(ErrMalformedName, "expected %d underscore separated parts in %q", n, rel)
	}
	return parts, nil
}

// partAt returns the integer at index i of parts, negative indices count from the end.
func partAt(parts []string, i int, rel string) (int, error) {
	if i < 0 {
		i += len(parts)
	}
	if i < 0 || i >= len(parts) {
		return 0, errors.Wrapf(ErrMalformedName, "no frame number in %q", rel)
	}
	v, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedName, "invalid frame number %q in %q", parts[i], rel)
	}
	return v, nil
}

// trimParts removes the last n underscore separated parts of s.
func trimParts(s string, n int) string {
	parts := strings.Split(s, "_")
	if n > len(parts) {
		n = len(parts)
	}
	return strings.Join(parts[:len(parts)-n], "_")
}

// numericStem parses file names that consist of the frame number only.
func numericStem(_, rel string) (FrameKey, error) {
	s := stem(rel)
	v, err := strconv.Atoi(s)
	if err != nil {
		return FrameKey{}, errors.Wrapf(ErrMalformedName, "file name %q is not a frame number", rel)
	}
	return FrameKey{Sequence: path.Dir(rel), Frame: v}, nil
}

// withoutTop identifies files by their path below the category directory.
func withoutTop(_, rel string) (string, error) {
	return dropFirstComponent(rel), nil
}

func virtualKITTILayout() *Layout {
	return &Layout{
		Categories: []CategorySpec{
			pngCategory("color", "vkitti_1.3.1_rgb"),
			pngCategory("depth", "vkitti_1.3.1_depthgt"),
			pngCategory("segmentation", "vkitti_1.3.1_scenegt"),
		},
		Strategy: IndexStrategy{FrameKey: numericStem, Identity: withoutTop},
	}
}

// mapillarySegmentationOffset separates the segmentation ids from the color ids.
const mapillarySegmentationOffset = 5000

func mapillaryLayout() *Layout {
	return &Layout{
		Categories: []CategorySpec{jpgCategory("color", "ColorImage"), pngCategory("segmentation", "Segmentation")},
		Ignore:     []string{"test/Segmentation"},
		Strategy: IndexStrategy{
			Offset: func(category string) int {
				if category == "segmentation" {
					return mapillarySegmentationOffset
				}
				return 0
			},
		},
	}
}

func gta5Layout() *Layout {
	return &Layout{
		Categories: []CategorySpec{pngCategory("color", "images"), pngCategory("segmentation", "labels")},
	}
}

func synthiaLayout() *Layout {
	return &Layout{
		Categories: []CategorySpec{
			pngCategory("color", "RGB"),
			pngCategory("depth", "Depth_1_channel"),
			pngCategory("segmentation", "GT_1_channel", "LABELS"),
		},
	}
}

func bdd100kLayout() *Layout {
	return &Layout{
		Categories: []CategorySpec{jpgCategory("color", "images"), pngCategory("segmentation", "labels")},
		RemoveDirs: []string{"color_labels"},
		Strategy: IndexStrategy{
			Identity: func(_, rel string) (string, error) {
				return strings.Split(stem(rel), "_")[0], nil
			},
		},
	}
}

func voc2012Layout() *Layout {
	return &Layout{
		Categories: []CategorySpec{jpgCategory("color", "JPEGImages"), pngCategory("segmentation", "SegmentationClassAug")},
		RemoveDirs: []string{"__MACOSX"},
		Strategy: IndexStrategy{
			Identity: func(_, rel string) (string, error) {
				return strings.Split(dropFirstComponent(rel), ".")[0], nil
			},
		},
	}
}

func a2d2Layout() *Layout {
	return &Layout{
		Categories: []CategorySpec{pngCategory("color", "camera", "front_center"), pngCategory("segmentation", "label", "front_center")},
		Ambiguous:  []string{"camera_lidar_semantic"},
		Strategy: IndexStrategy{
			// 20180807145028_camera_frontcenter_000000091.png and
			// 20180807145028_label_frontcenter_000000091.png share their id.
			Identity: func(_, rel string) (string, error) {
				parts, err := underscoreParts(rel, 4)
				if err != nil {
					return "", err
				}
				return parts[0] + "_" + parts[2] + "_" + parts[3], nil
			},
		},
	}
}

func lostAndFoundLayout() *Layout {
	// Index of the frame number counted from the end, the sequence number precedes it.
	framePos := func(category string) int {
		if strings.Contains(category, "segmentation") {
			return -3
		}
		return -2
	}
	return &Layout{
		Categories: []CategorySpec{
			pngCategory("color", "leftImg8bit"),
			{Name: "segmentation", Ext: ".png", Filter: []string{"gtCoarse"}, Exclude: []string{"color", "instance", "Train"}},
		},
		Strategy: IndexStrategy{
			FrameKey: func(category, rel string) (FrameKey, error) {
				parts, err := underscoreParts(rel, 4)
				if err != nil {
					return FrameKey{}, err
				}
				frame, err := partAt(parts, framePos(category), rel)
				if err != nil {
					return FrameKey{}, err
				}
				seq, err := partAt(parts, framePos(category)-1, rel)
				if err != nil {
					return FrameKey{}, err
				}
				return FrameKey{Sequence: strconv.Itoa(seq), Frame: frame}, nil
			},
			Adjacent: sameSequence,
			Identity: func(category, rel string) (string, error) {
				if strings.Contains(category, "segmentation") {
					return trimParts(dropFirstComponent(rel), 2), nil
				}
				return trimParts(dropFirstComponent(rel), 1), nil
			},
			Unmatched: func(category string) UnmatchedPolicy {
				if strings.Contains(category, "segmentation") {
					return UnmatchedFail
				}
				return UnmatchedSkip
			},
		},
	}
}

func camVidLayout() *Layout {
	return &Layout{
		Categories: []CategorySpec{pngCategory("color", "701_StillsRaw_full"), pngCategory("segmentation", "LabeledApproved_full")},
		RemoveDirs: []string{"trainid"},
		Strategy: IndexStrategy{
			// 0001TP_006690.png: recording 0001TP, frame 006690.
			FrameKey: func(_, rel string) (FrameKey, error) {
				return FrameKey{Sequence: strings.Split(stem(rel), "_")[0]}, nil
			},
			Adjacent: sameSequence,
			Identity: func(_, rel string) (string, error) {
				parts, err := underscoreParts(rel, 2)
				if err != nil {
					return "", err
				}
				return parts[0] + "_" + parts[1], nil
			},
		},
	}
}

func make3dLayout() *Layout {
	return &Layout{
		Categories: []CategorySpec{jpgCategory("color", "ColorImage"), pngCategory("depth", "Depth_PNG")},
		Strategy: IndexStrategy{
			Identity: func(_, rel string) (string, error) {
				s := stem(rel)
				if i := strings.LastIndex(s, "img-"); i >= 0 {
					s = s[i+len("img-"):]
				}
				if i := strings.LastIndex(s, "depth_sph_corr-"); i >= 0 {
					s = s[i+len("depth_sph_corr-"):]
				}
				return s, nil
			},
		},
	}
}
