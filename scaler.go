package dsprep

// Creation of scaled copies of a dataset.

import (
	"context"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
)

// NumWorkers is the default number of concurrent image reads and writes.
const NumWorkers = 4

var (
	imageKeys  = []string{"color", "depth", "segmentation"}
	cameraKeys = []string{"camera_intrinsics", "camera_intrinsics_right"}
)

func isImageKey(name string) bool {
	for _, k := range imageKeys {
		if strings.HasPrefix(name, k) {
			return true
		}
	}
	return false
}

func isCameraKey(name string) bool {
	return containsString(cameraKeys, name)
}

// ScaleOptions configures Scaler.Process. Exactly one of OutputSize and ScaleFactor must be set.
type ScaleOptions struct {
	NewName       string
	OutputSize    [2]int   // Height and width of the scaled images.
	ScaleFactor   int      // Divisor of the image height and width.
	Keys          []string // Categories to convert, all if empty.
	SplitsToAdapt []string // Split folders <dataset>_<split> that are copied with adapted intrinsics.
}

// Scaler creates scaled versions of a dataset. It only works reliably on PNG source images, as
// rescaling JPEG images adds compression artifacts.
type Scaler struct {
	fs        afero.Fs
	dataPath  string
	dataset   string
	splitPath string

	Workers  int       // Concurrent reads and writes, NumWorkers by default.
	Progress io.Writer // Progress bar output, os.Stderr by default.
}

// NewScaler returns the scaler for the dataset in dataPath/dataset. The split files are read from
// the dataset folder, or from <dataset>_<split> if split is set.
func NewScaler(fs afero.Fs, dataPath, dataset, split string) *Scaler {
	root := filepath.Join(dataPath, dataset)
	splitPath := root
	if split != "" {
		splitPath = root + "_" + split
	}
	return &Scaler{
		fs:        fs,
		dataPath:  dataPath,
		dataset:   dataset,
		splitPath: splitPath,
		Workers:   NumWorkers,
		Progress:  os.Stderr,
	}
}

func (s *Scaler) root() string { return filepath.Join(s.dataPath, s.dataset) }

// scaleSample is all data of one GlobalID.
type scaleSample struct {
	id      int
	images  map[string]string // Category name to relative image path.
	cameras map[string][][]float64
	loaded  map[string]image.Image
}

// reference returns the name of the image that determines the scale factors of the sample.
func (s *scaleSample) reference() string {
	if _, ok := s.loaded["color"]; ok {
		return "color"
	}
	names := make([]string, 0, len(s.loaded))
	for n := range s.loaded {
		names = append(names, n)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// samples groups the entries of the basic manifest by GlobalID.
func (s *Scaler) samples(basic *Manifest, keys []string) []*scaleSample {
	byID := make(map[int]*scaleSample)
	for i := range basic.Categories {
		c := &basic.Categories[i]
		if len(keys) > 0 && !containsString(keys, c.Name) {
			continue
		}
		if !isImageKey(c.Name) && !isCameraKey(c.Name) {
			continue
		}
		if len(c.Files) > 0 {
			ext := strings.ToLower(filepath.Ext(c.Files[0].Path()))
			if ext == ".jpg" || ext == ".jpeg" {
				log.Warn().Str("category", c.Name).Msg("JPEG source images, the scaled dataset will differ " +
					"from scaling the images after loading")
			}
		}

		for j, p := range c.Positions {
			sample, ok := byID[p.GlobalID]
			if !ok {
				sample = &scaleSample{
					id:      p.GlobalID,
					images:  make(map[string]string),
					cameras: make(map[string][][]float64),
				}
				byID[p.GlobalID] = sample
			}
			v := c.value(j)
			switch {
			case isCameraKey(c.Name) && v.Kind() == MatrixKind:
				sample.cameras[c.Name] = v.Matrix()
			case isImageKey(c.Name) && v.Kind() == PathKind:
				sample.images[c.Name] = v.Path()
			}
		}
	}

	samples := make([]*scaleSample, 0, len(byID))
	for _, sample := range byID {
		samples = append(samples, sample)
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].id < samples[j].id })
	return samples
}

// Process scales every image of the dataset and saves it below the new dataset folder, together
// with manifests whose camera intrinsics are adapted to the new size.
func (s *Scaler) Process(ctx context.Context, opts ScaleOptions) error {
	if opts.NewName == "" || opts.NewName == s.dataset {
		return errors.Wrapf(ErrConfig, "the scaled dataset needs a new name, got %q", opts.NewName)
	}
	if (opts.ScaleFactor > 0) == (opts.OutputSize != [2]int{}) {
		return errors.Wrap(ErrConfig, "exactly one of output size and scale factor has to be set")
	}
	if opts.ScaleFactor == 0 && (opts.OutputSize[0] <= 0 || opts.OutputSize[1] <= 0) {
		return errors.Wrapf(ErrConfig, "invalid output size %v", opts.OutputSize)
	}
	newRoot := filepath.Join(s.dataPath, opts.NewName)
	if ok, _ := afero.Exists(s.fs, newRoot); ok {
		return errors.Wrapf(ErrConfig, "writing into the existing dataset folder %q is not allowed", newRoot)
	}

	basic, err := ReadManifest(s.fs, filepath.Join(s.root(), BasicFilesName))
	if err != nil {
		return err
	}
	samples := s.samples(basic, opts.Keys)
	log.Info().Str("dataset", s.dataset).Str("target", opts.NewName).Int("samples", len(samples)).
		Msg("Scaling dataset")

	intrinsics, err := s.scaleImages(ctx, samples, newRoot, opts)
	if err != nil {
		return err
	}

	// Write the manifests of the scaled dataset.
	scaled := basic.Clone()
	setIntrinsics(scaled, intrinsics)
	if err := WriteManifest(s.fs, filepath.Join(newRoot, BasicFilesName), scaled); err != nil {
		return err
	}
	if err := s.writeSplits(s.splitPath, newRoot, intrinsics); err != nil {
		return err
	}

	params, err := ReadParameters(s.fs, filepath.Join(s.root(), ParametersName))
	if err != nil {
		return err
	}
	params.Splits = opts.SplitsToAdapt
	if err := WriteParameters(s.fs, filepath.Join(newRoot, ParametersName), params); err != nil {
		return err
	}

	return s.adaptSplits(opts.SplitsToAdapt, newRoot, intrinsics)
}

// scaleImages loads, resizes and writes the images of all samples. It returns the scaled camera
// intrinsics by GlobalID and category.
func (s *Scaler) scaleImages(ctx context.Context, samples []*scaleSample, newRoot string,
	opts ScaleOptions) (map[int]map[string][][]float64, error) {

	workers := s.Workers
	if workers <= 0 {
		workers = NumWorkers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create the write pool")
	}
	defer pool.Release()

	progress := s.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(samples),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Scaling "+s.dataset),
		progressbar.OptionShowCount(),
	)

	errs := make(chan error, 1)
	trySendError := func(err error) {
		select {
		case errs <- err:
		default:
		}
	}
	failed := func() bool { return len(errs) > 0 }

	// Load the images concurrently from a work queue.
	workQueue := make(chan *scaleSample, 2*workers)
	loaded := make(chan *scaleSample, 2*workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for sample := range workQueue {
				if failed() {
					continue
				}
				if err := s.loadSample(sample); err != nil {
					trySendError(err)
					continue
				}
				loaded <- sample
			}
		}()
	}
	go func() {
		defer close(workQueue)
		for _, sample := range samples {
			select {
			case workQueue <- sample:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(loaded)
	}()

	// Resize and write the images through the pool, limiting the number of pending writes.
	intrinsics := make(map[int]map[string][][]float64)
	pending := make(chan struct{}, workers)
	var writes sync.WaitGroup
	for sample := range loaded {
		if failed() || ctx.Err() != nil {
			continue
		}
		ref := sample.reference()
		if ref == "" {
			_ = bar.Add(1)
			continue
		}
		b := sample.loaded[ref].Bounds()
		w, h := targetSize(b.Dx(), b.Dy(), opts.OutputSize, opts.ScaleFactor)
		if w <= 0 || h <= 0 {
			trySendError(errors.Wrapf(ErrConfig, "sample %d would be scaled to %dx%d", sample.id, w, h))
			continue
		}

		for name, m := range sample.cameras {
			k, err := scaleIntrinsics(m, float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
			if err != nil {
				trySendError(errors.WithMessagef(err, "sample %d, %s", sample.id, name))
				break
			}
			if intrinsics[sample.id] == nil {
				intrinsics[sample.id] = make(map[string][][]float64)
			}
			intrinsics[sample.id][name] = k
		}

		for name, img := range sample.loaded {
			name, img := name, img
			out := filepath.Join(newRoot, filepath.FromSlash(sample.images[name]))
			pending <- struct{}{}
			writes.Add(1)
			err := pool.Submit(func() {
				defer func() {
					<-pending
					writes.Done()
				}()
				if err := saveImage(s.fs, out, scaleImage(name, img, w, h)); err != nil {
					trySendError(err)
				}
			})
			if err != nil {
				<-pending
				writes.Done()
				trySendError(errors.Wrap(err, "cannot schedule write"))
			}
		}
		sample.loaded = nil
		_ = bar.Add(1)
	}
	writes.Wait()
	_ = bar.Finish()

	close(errs)
	if err := <-errs; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return intrinsics, nil
}

func (s *Scaler) loadSample(sample *scaleSample) error {
	sample.loaded = make(map[string]image.Image, len(sample.images))
	for name, rel := range sample.images {
		img, _, err := loadImage(s.fs, filepath.Join(s.root(), filepath.FromSlash(rel)))
		if err != nil {
			return err
		}
		sample.loaded[name] = img
	}
	return nil
}

// scaleImage interpolates color images. Depth and segmentation images are resampled without
// interpolation.
func scaleImage(name string, img image.Image, w, h int) image.Image {
	if strings.HasPrefix(name, "color") {
		return resizeColor(img, w, h)
	}
	return resizeNearest(img, w, h)
}

// setIntrinsics replaces the camera matrices of m by the ones in intrinsics. The basic manifest
// stores them as numerical values, split manifests as files.
func setIntrinsics(m *Manifest, intrinsics map[int]map[string][][]float64) {
	for i := range m.Categories {
		c := &m.Categories[i]
		if !isCameraKey(c.Name) {
			continue
		}
		for j, p := range c.Positions {
			k, ok := intrinsics[p.GlobalID][c.Name]
			if !ok {
				continue
			}
			if c.Numeric != nil {
				c.Numeric[j] = MatrixValue(k)
			} else {
				c.Files[j] = MatrixValue(k)
			}
		}
	}
}

// writeSplits copies the split files in src to dst with the intrinsics replaced. Missing splits
// are skipped.
func (s *Scaler) writeSplits(src, dst string, intrinsics map[int]map[string][][]float64) error {
	for _, split := range SplitNames {
		p := filepath.Join(src, split.FileName())
		if ok, _ := afero.Exists(s.fs, p); !ok {
			log.Debug().Str("path", src).Str("split", string(split)).Msg("No split data accessible")
			continue
		}
		m, err := ReadManifest(s.fs, p)
		if err != nil {
			return err
		}
		setIntrinsics(m, intrinsics)
		if err := s.fs.MkdirAll(dst, 0755); err != nil {
			return err
		}
		if err := WriteManifest(s.fs, filepath.Join(dst, split.FileName()), m); err != nil {
			return err
		}
	}
	return nil
}

// adaptSplits copies the split folders <dataset>_<split> to <scaled>_<split>.
func (s *Scaler) adaptSplits(splits []string, scaledRoot string, intrinsics map[int]map[string][][]float64) error {
	for _, split := range splits {
		dst := scaledRoot + "_" + split
		if ok, _ := afero.DirExists(s.fs, dst); ok {
			log.Warn().Str("path", dst).Msg("Existing split files will not be overwritten")
			continue
		}
		if err := s.writeSplits(s.root()+"_"+split, dst, intrinsics); err != nil {
			return err
		}
	}
	return nil
}

// AdaptSplits copies the split folders of the dataset to the already scaled dataset scaledName,
// taking the camera intrinsics from its basic manifest, and registers them in its parameters.
func (s *Scaler) AdaptSplits(scaledName string, splits ...string) error {
	scaledRoot := filepath.Join(s.dataPath, scaledName)
	basic, err := ReadManifest(s.fs, filepath.Join(scaledRoot, BasicFilesName))
	if err != nil {
		return err
	}
	intrinsics := make(map[int]map[string][][]float64)
	for i := range basic.Categories {
		c := &basic.Categories[i]
		if !isCameraKey(c.Name) || c.Numeric == nil {
			continue
		}
		for j, p := range c.Positions {
			if c.Numeric[j].Kind() != MatrixKind {
				continue
			}
			if intrinsics[p.GlobalID] == nil {
				intrinsics[p.GlobalID] = make(map[string][][]float64)
			}
			intrinsics[p.GlobalID][c.Name] = c.Numeric[j].Matrix()
		}
	}

	paramsPath := filepath.Join(scaledRoot, ParametersName)
	params, err := ReadParameters(s.fs, paramsPath)
	if err != nil {
		return err
	}
	params.Splits = append(params.Splits, splits...)
	if err := WriteParameters(s.fs, paramsPath, params); err != nil {
		return err
	}
	return s.adaptSplits(splits, scaledRoot, intrinsics)
}
