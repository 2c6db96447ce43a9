package dsprep

// Conversion of segmentation ground truth to train ids.

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
)

// TrainIDFolder is the directory below the dataset root holding the converted images.
const TrainIDFolder = "segmentation_trainid"

const trainIDSuffix = "_trainid"

var segmentationKeys = []string{"segmentation", "segmentation_right"}

// TrainIDConverter writes train id versions of the segmentation images of a dataset and registers
// them as additional categories in its manifests.
type TrainIDConverter struct {
	fs        afero.Fs
	root      string
	splitPath string
	lookup    *TrainIDLookup

	Workers  int       // Concurrent conversions, NumWorkers by default.
	Progress io.Writer // Progress bar output, os.Stderr by default.
}

// NewTrainIDConverter returns the converter for the dataset in dataPath/dataset whose ground truth
// is encoded according to mode. The split files are read from the dataset folder, or from
// <dataset>_<split> if split is set.
func NewTrainIDConverter(fs afero.Fs, dataPath, dataset string, labels *LabelTable, mode LabelsMode,
	split string) (*TrainIDConverter, error) {

	lookup, err := labels.TrainIDLookup(mode)
	if err != nil {
		return nil, err
	}
	root := filepath.Join(dataPath, dataset)
	splitPath := root
	if split != "" {
		splitPath = root + "_" + split
	}
	return &TrainIDConverter{
		fs:        fs,
		root:      root,
		splitPath: splitPath,
		lookup:    lookup,
		Workers:   NumWorkers,
		Progress:  os.Stderr,
	}, nil
}

// Process converts all segmentation images and adapts the manifests of the dataset, its split
// files and the split folders <dataset>_<split> of splitsToAdapt.
func (c *TrainIDConverter) Process(ctx context.Context, splitsToAdapt []string) error {
	basic, err := ReadManifest(c.fs, filepath.Join(c.root, BasicFilesName))
	if err != nil {
		return err
	}

	var keys, files []string
	for _, key := range segmentationKeys {
		cat := basic.Category(key)
		if cat == nil {
			continue
		}
		keys = append(keys, key)
		for _, f := range cat.Files {
			if f.Kind() == PathKind {
				files = append(files, f.Path())
			}
		}
	}
	if len(keys) == 0 {
		return errors.Wrapf(ErrConsistency, "no segmentation categories found in %q", c.root)
	}

	if err := c.convert(ctx, files); err != nil {
		return err
	}
	return c.adaptManifests(splitsToAdapt, keys)
}

// convert writes the train id image of every file through a pool of workers.
func (c *TrainIDConverter) convert(ctx context.Context, files []string) error {
	workers := c.Workers
	if workers <= 0 {
		workers = NumWorkers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return errors.Wrap(err, "cannot create the conversion pool")
	}
	defer pool.Release()

	progress := c.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Converting to train ids"),
		progressbar.OptionShowCount(),
	)

	errs := make(chan error, 1)
	trySendError := func(err error) {
		select {
		case errs <- err:
		default:
		}
	}

	pending := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for _, rel := range files {
		if len(errs) > 0 || ctx.Err() != nil {
			break
		}
		rel := rel
		pending <- struct{}{}
		wg.Add(1)
		err := pool.Submit(func() {
			defer func() {
				<-pending
				wg.Done()
			}()
			if err := c.convertFile(rel); err != nil {
				trySendError(err)
			}
			_ = bar.Add(1)
		})
		if err != nil {
			<-pending
			wg.Done()
			trySendError(errors.Wrap(err, "cannot schedule conversion"))
		}
	}
	wg.Wait()
	_ = bar.Finish()

	close(errs)
	if err := <-errs; err != nil {
		return err
	}
	return ctx.Err()
}

func (c *TrainIDConverter) convertFile(rel string) error {
	src := filepath.Join(c.root, filepath.FromSlash(rel))
	img, _, err := loadImage(c.fs, src)
	if err != nil {
		return err
	}
	dst := filepath.Join(c.root, TrainIDFolder, filepath.FromSlash(rel))
	return saveImage(c.fs, dst, c.lookup.Convert(img))
}

// AdaptManifests restores the train id categories of all segmentation categories, e.g. after the
// filelist has been recreated. It has no effect if no images have been converted yet.
func (c *TrainIDConverter) AdaptManifests(splitsToAdapt []string) error {
	if ok, _ := afero.DirExists(c.fs, filepath.Join(c.root, TrainIDFolder)); !ok {
		log.Warn().Str("path", c.root).Msg("No segmentation_trainid folder found in the dataset directory")
		return nil
	}
	return c.adaptManifests(splitsToAdapt, nil)
}

// adaptManifests inserts the train id categories for keys, all segmentation categories of the
// basic manifest if keys is nil.
func (c *TrainIDConverter) adaptManifests(splitsToAdapt, keys []string) error {
	basicPath := filepath.Join(c.root, BasicFilesName)
	basic, err := ReadManifest(c.fs, basicPath)
	if err != nil {
		return err
	}
	if keys == nil {
		for _, name := range basic.Names() {
			if strings.Contains(name, "segmentation") && !strings.HasSuffix(name, trainIDSuffix) {
				keys = append(keys, name)
			}
		}
	}
	if err := insertTrainIDCategories(basic, keys); err != nil {
		return errors.WithMessagef(err, "manifest %q", basicPath)
	}
	if err := WriteManifest(c.fs, basicPath, basic); err != nil {
		return err
	}

	dirs := []string{c.splitPath}
	for _, s := range splitsToAdapt {
		dirs = append(dirs, c.root+"_"+s)
	}
	for _, dir := range dirs {
		for _, split := range SplitNames {
			p := filepath.Join(dir, split.FileName())
			if ok, _ := afero.Exists(c.fs, p); !ok {
				log.Debug().Str("path", dir).Str("split", string(split)).Msg("No split data accessible")
				continue
			}
			m, err := ReadManifest(c.fs, p)
			if err != nil {
				return err
			}
			if err := insertTrainIDCategories(m, keys); err != nil {
				return errors.WithMessagef(err, "manifest %q", p)
			}
			if err := WriteManifest(c.fs, p, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// insertTrainIDCategories replaces the train id categories of keys in m. They are placed after
// the first run of segmentation categories, in the order of keys.
func insertTrainIDCategories(m *Manifest, keys []string) error {
	for _, k := range keys {
		m.remove(k + trainIDSuffix)
	}

	pos := -1
	for i := range m.Categories {
		if strings.Contains(m.Categories[i].Name, "segmentation") {
			pos = i + 1
		} else if pos >= 0 {
			break
		}
	}
	if pos < 0 {
		return errors.Wrap(ErrConsistency, "no segmentation categories found")
	}

	for i := len(keys) - 1; i >= 0; i-- {
		src := m.Category(keys[i])
		if src == nil {
			continue
		}
		n := src.clone()
		n.Name = keys[i] + trainIDSuffix
		for j, f := range n.Files {
			if f.Kind() == PathKind {
				n.Files[j] = PathValue(path.Join(TrainIDFolder, f.Path()))
			}
		}
		for j, d := range n.Folders {
			n.Folders[j] = path.Join(TrainIDFolder, d)
		}
		if m.Basic {
			n.Filter = append(n.Filter, TrainIDFolder)
		}
		m.insert(pos, n)
	}
	return nil
}
