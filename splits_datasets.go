package dsprep

import (
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// KITTISplits are the predefined splits of the KITTI raw data. Each one is read from the lists in
// kitti_<split>/splits.
var KITTISplits = []string{
	"eigen_split", "zhou_split", "zhou_split_left", "zhou_split_right", "benchmark_split", "kitti_split",
	"odom10_split", "odom09_split", "video_prediction_split", "optical_flow_split",
}

// a2d2Splits holds the parameters of the known random A2D2 splits.
var a2d2Splits = map[string]RandomFolders{
	"andreas_split": {Sizes: [3]float64{0.8, 0.1, 0.1}, Seed: 53},
}

// splitPlan describes one set of split files of a dataset.
type splitPlan struct {
	name        string // Suffix of the split directory, empty for the dataset root.
	strategy    SplitStrategy
	minHeight   int
	minWidth    int
	saveFolders bool
}

// splitPlans returns the split files to create for dataset. names selects among the named splits
// of kitti and a2d2, all of them are created if it is empty.
func splitPlans(dataset string, names []string) ([]splitPlan, error) {
	switch dataset {
	case "cityscapes", "cityscapes_video", "cityscapes_sequence", "cityscapes_part":
		return []splitPlan{{strategy: FolderFilter{Val: "val"}}}, nil
	case "cityscapes_extra":
		return []splitPlan{{strategy: FolderFilter{Train: "train_extra", Val: "val"}}}, nil
	case "bdd100k", "camvid":
		return []splitPlan{{strategy: FolderFilter{Val: "val"}}}, nil
	case "kitti":
		if len(names) == 0 {
			names = KITTISplits
		}
		plans := make([]splitPlan, 0, len(names))
		for _, n := range names {
			if !containsString(KITTISplits, n) {
				return nil, errors.Wrapf(ErrConfig, "unknown kitti split %q", n)
			}
			plans = append(plans, splitPlan{name: n, strategy: KITTIFiles{}})
		}
		return plans, nil
	case "kitti_2012", "kitti_2015":
		return []splitPlan{{strategy: FolderFilter{Train: "training", Test: "testing", ValEqualTest: true}}}, nil
	case "virtual_kitti":
		return []splitPlan{
			{name: "full_split", strategy: AllTrain{}},
			{name: "clone_split", strategy: FolderFilter{Train: "clone"}},
		}, nil
	case "mapillary", "mapillary_by_ID":
		return []splitPlan{
			{strategy: FolderFilter{}},
			{name: "by_ID_res_288x960", strategy: FolderFilter{}, minHeight: 288, minWidth: 960},
			{name: "by_ID_res_512x1024", strategy: FolderFilter{}, minHeight: 512, minWidth: 1024},
		}, nil
	case "gta5":
		return []splitPlan{
			{strategy: MatFile{}},
			{name: "full_split", strategy: AllTrain{}},
		}, nil
	case "synthia":
		return []splitPlan{{strategy: AllTrain{}}}, nil
	case "voc2012":
		return []splitPlan{{strategy: TextFile{
			Dir:   filepath.Join("ImageSets", "Segmentation"),
			Train: "trainaug",
			Val:   "val",
		}}}, nil
	case "a2d2":
		if len(names) == 0 {
			for n := range a2d2Splits {
				names = append(names, n)
			}
			sort.Strings(names)
		}
		plans := make([]splitPlan, 0, len(names))
		for _, n := range names {
			s, ok := a2d2Splits[n]
			if !ok {
				return nil, errors.Wrapf(ErrConfig, "no seed is known for the a2d2 split %q", n)
			}
			plans = append(plans, splitPlan{name: n, strategy: s, saveFolders: true})
		}
		return plans, nil
	case "lostandfound", "make3d":
		return []splitPlan{{strategy: FolderFilter{}}}, nil
	}
	return nil, errors.Wrapf(ErrConfig, "dataset %q not supported", dataset)
}

func containsString(l []string, s string) bool {
	for _, e := range l {
		if e == s {
			return true
		}
	}
	return false
}

// DatasetSplitter creates the split files of a dataset according to its predefined splits.
type DatasetSplitter struct {
	fs       afero.Fs
	dataPath string
	dataset  string
}

// NewDatasetSplitter returns the splitter for the dataset in dataPath/dataset.
func NewDatasetSplitter(fs afero.Fs, dataPath, dataset string) (*DatasetSplitter, error) {
	if !isSupportedDataset(dataset) {
		return nil, errors.Wrapf(ErrConfig, "dataset %q not supported", dataset)
	}
	return &DatasetSplitter{fs: fs, dataPath: dataPath, dataset: dataset}, nil
}

// CreateSplits creates and writes the split files. names selects among the named splits of kitti
// and a2d2.
func (d *DatasetSplitter) CreateSplits(names ...string) error {
	plans, err := splitPlans(d.dataset, names)
	if err != nil {
		return err
	}

	root := filepath.Join(d.dataPath, d.dataset)
	for _, p := range plans {
		log.Info().Str("dataset", d.dataset).Str("split", p.name).Msg("Creating split")
		b, err := NewSplitBuilder(d.fs, root)
		if err != nil {
			return err
		}
		b.SetSplitPath(p.name)
		if err := b.CreateSplits(p.strategy); err != nil {
			return errors.WithMessagef(err, "split %q of %q", p.name, d.dataset)
		}
		if p.minHeight > 0 || p.minWidth > 0 {
			if err := b.FilterByResolution(p.minHeight, p.minWidth); err != nil {
				return err
			}
		}
		if err := b.Dump(); err != nil {
			return err
		}
		if p.saveFolders {
			if err := b.SaveSplitFolders(); err != nil {
				return err
			}
		}
	}
	return nil
}
