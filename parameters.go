package dsprep

// Per dataset parameters consumed by the data loaders, persisted as parameters.json.

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// DatasetParameters describes the camera setup and the image encodings of a dataset. Unset fields
// are written as null.
type DatasetParameters struct {
	K          *[4][4]float64 `json:"K"`        // Normalized camera matrix.
	StereoT    *float64       `json:"stereo_T"` // Stereo baseline in meters.
	Labels     *string        `json:"labels"`
	LabelsMode *string        `json:"labels_mode"`
	DepthMode  *string        `json:"depth_mode"`
	FlowMode   *string        `json:"flow_mode"`
	Splits     []string       `json:"splits"`
}

var (
	cityscapesK = [4][4]float64{{1.10, 0, 0.5, 0}, {0, 2.21, 0.5, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
	kittiK      = [4][4]float64{{0.58, 0, 0.5, 0}, {0, 1.92, 0.5, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
)

func str(s string) *string { return &s }

func num(f float64) *float64 { return &f }

func cityscapesParameters(labelsMode, depthMode *string) DatasetParameters {
	k := cityscapesK
	return DatasetParameters{K: &k, StereoT: num(0.22), Labels: str("cityscapes"), LabelsMode: labelsMode,
		DepthMode: depthMode}
}

func kittiParameters(flowMode *string, splits ...string) DatasetParameters {
	k := kittiK
	return DatasetParameters{K: &k, StereoT: num(0.54), Labels: str("kitti"), LabelsMode: str("fromid"),
		DepthMode: str("uint_16"), FlowMode: flowMode, Splits: splits}
}

var parameterIndex = map[string]DatasetParameters{
	"a2d2":                  {Labels: str("a2d2"), LabelsMode: str("fromrgb"), Splits: []string{"andreas_split"}},
	"bdd100k":               {Labels: str("bdd100k"), LabelsMode: str("fromtrainid")},
	"camvid":                {Labels: str("camvid"), LabelsMode: str("fromrgb")},
	"cityscapes":            cityscapesParameters(str("fromid"), str("uint_16_subtract_one")),
	"cityscapes_demo_video": cityscapesParameters(str("fromid"), nil),
	"cityscapes_extra":      cityscapesParameters(str("fromid"), str("uint_16_subtract_one")),
	"cityscapes_sequence":   cityscapesParameters(str("fromid"), str("uint_16_subtract_one")),
	"cityscapes_video":      cityscapesParameters(nil, nil),
	"gta5":                  {Labels: str("gta5"), LabelsMode: str("fromrgb")},
	"kitti":                 kittiParameters(nil, KITTISplits...),
	"kitti_2012":            kittiParameters(nil),
	"kitti_2015":            kittiParameters(str("kitti")),
	"lostandfound":          {Labels: str("lostandfound"), LabelsMode: str("fromid")},
	"make3d":                {DepthMode: str("uint_16")},
	"mapillary":             {Labels: str("mapillary"), LabelsMode: str("fromrgb")},
	"synthia":               {Labels: str("synthia"), LabelsMode: str("fromid"), DepthMode: str("normalized_100")},
	"virtual_kitti": func() DatasetParameters {
		p := kittiParameters(nil, "full_split")
		p.Labels, p.LabelsMode, p.DepthMode = str("virtual_kitti"), str("fromrgb"), str("normalized_100")
		return p
	}(),
	"voc2012": {LabelsMode: str("fromtrainid")},
}

// ParametersFor returns a copy of the parameters of dataset.
func ParametersFor(dataset string) (DatasetParameters, error) {
	p, ok := parameterIndex[dataset]
	if !ok {
		return DatasetParameters{}, errors.Wrapf(ErrConfig, "%q is not a valid dataset", dataset)
	}
	if p.K != nil {
		k := *p.K
		p.K = &k
	}
	p.Splits = append([]string(nil), p.Splits...)
	if len(p.Splits) == 0 {
		p.Splits = nil
	}
	return p, nil
}

// ParameterDatasets returns the names of all datasets with known parameters, sorted.
func ParameterDatasets() []string {
	names := make([]string, 0, len(parameterIndex))
	for n := range parameterIndex {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ReadParameters reads the parameters file at path.
func ReadParameters(fs afero.Fs, path string) (*DatasetParameters, error) {
	p := &DatasetParameters{}
	if err := readJSON(fs, path, p); err != nil {
		return nil, err
	}
	return p, nil
}

// WriteParameters writes p to path.
func WriteParameters(fs afero.Fs, path string, p *DatasetParameters) error {
	data, err := json.Marshal(p)
	if err != nil {
		return errors.Wrapf(err, "failed to encode parameters %q", path)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write parameters %q", path)
	}
	return nil
}

// WriteParameterFiles writes parameters.json into the directory of every named dataset below
// dataRoot, all known datasets if names is empty. Datasets without a directory are skipped.
func WriteParameterFiles(fs afero.Fs, dataRoot string, names ...string) error {
	if len(names) == 0 {
		names = ParameterDatasets()
	}
	params := make([]DatasetParameters, len(names))
	for i, n := range names {
		p, err := ParametersFor(n)
		if err != nil {
			return err
		}
		params[i] = p
	}

	for i, n := range names {
		dir := filepath.Join(dataRoot, n)
		if ok, _ := afero.DirExists(fs, dir); !ok {
			log.Info().Str("dataset", n).Msg("not found")
			continue
		}
		if err := WriteParameters(fs, filepath.Join(dir, ParametersName), &params[i]); err != nil {
			return err
		}
		log.Info().Str("dataset", n).Msg("OK")
	}
	return nil
}
