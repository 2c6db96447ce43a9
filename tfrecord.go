package dsprep

// TFRecord export of split manifests.

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/ryszard/tfutils/go/example"
	"github.com/ryszard/tfutils/go/tfrecord"
	"github.com/ryszard/tfutils/proto/tensorflow/core/example" // package tensorflow
	"github.com/spf13/afero"
)

// TFFeatureMap maps feature names to their values. Values must be convertible to
// tensorflow.Feature.
type TFFeatureMap map[string]interface{}

// toTFFeatures returns the features of entry i of the canonical category of split. Images are read
// relative to root.
func toTFFeatures(fs afero.Fs, root string, split *Manifest, i int) (TFFeatureMap, error) {
	canonical := &split.Categories[0]
	rel := canonical.Files[i].Path()
	imgPath := filepath.Join(root, filepath.FromSlash(rel))

	// Get the image width and height.
	img, format, err := decodeImageConfig(fs, imgPath)
	if err != nil {
		return nil, err
	}

	// Read the image data.
	imgData, err := afero.ReadFile(fs, imgPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read the image %q", imgPath)
	}

	pos := canonical.Positions[i]
	f := make(TFFeatureMap, 8+len(split.Categories))
	f["image/height"] = img.Height
	f["image/width"] = img.Width
	f["image/filename"] = rel
	f["image/encoded"] = imgData
	f["image/format"] = format
	f["position/global_id"] = pos.GlobalID
	f["position/frames_before"] = pos.Before
	f["position/frames_after"] = pos.After

	// Reference the correlated files of the other categories.
	for j := range split.Categories[1:] {
		c := &split.Categories[j+1]
		k := c.IndexOfGlobal(pos.GlobalID)
		if k < 0 || c.Files[k].Kind() != PathKind {
			continue
		}
		f[c.Name+"/filename"] = c.Files[k].Path()
	}
	return f, nil
}

// WriteSplitTFRecord does a streaming conversion, serialisation and file write of the split to one
// or more TFRecord files stored under out (with suffixes added when numShards>1). One example is
// written per entry of the canonical category.
func WriteSplitTFRecord(fs afero.Fs, root string, split *Manifest, out string, numShards int) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = errors.Errorf("conversion to TensorFlow Example failed: %v", e)
		}
	}()

	if len(split.Categories) == 0 {
		return errors.Wrap(ErrConsistency, "the split has no categories")
	}
	if numShards <= 0 {
		numShards = 1
	}
	n := len(split.Categories[0].Files)
	if n == 0 {
		log.Warn().Str("path", out).Msg("Empty split, no records written")
		return nil
	}

	fmtShardSuffix := func(idx int) string {
		return fmt.Sprintf("-%05d-of-%05d", idx, numShards)
	}

	var shardFile afero.File
	defer func() {
		if shardFile != nil {
			closeWithErrCheck(shardFile, &err)
		}
	}()
	shardSize := int(math.Ceil(float64(n) / float64(numShards)))
	shardIdx := -1

	// Convert and serialise one entry at a time.
	written := 0
	for i := 0; i < n; i++ {
		// Check if a new shard file needs to be opened for writing.
		if i%shardSize == 0 {
			shardIdx++

			// Close the previous shard file.
			if shardFile != nil {
				if err := shardFile.Close(); err != nil {
					return errors.Wrapf(err, "failed to close shard %q", shardFile.Name())
				}
				shardFile = nil
			}

			// Create the new shard file.
			shardPath := out
			if numShards > 1 {
				shardPath += fmtShardSuffix(shardIdx)
			}
			f, err := fs.Create(shardPath)
			if err != nil {
				return errors.Wrapf(err, "failed to create shard at %q", shardPath)
			}
			shardFile = f
		}

		features, err := toTFFeatures(fs, root, split, i)
		if err != nil {
			log.Warn().Err(err).Int("entry", i).Msg("Failed to convert")
			continue
		}

		// Write the example.
		if err := writeTFRecordExample(shardFile, example.New(features)); err != nil {
			return errors.Wrap(err, "failed to write example")
		}
		written++
	}

	log.Info().Str("path", out).Int("examples", written).Int("shards", shardIdx+1).Msg("TFRecord written")
	return nil
}

// ExportTFRecords writes one TFRecord file per split file in splitDir to outDir, e.g.
// train.tfrecord.
func ExportTFRecords(fs afero.Fs, root, splitDir, outDir string, numShards int) error {
	if err := fs.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	for _, split := range SplitNames {
		p := filepath.Join(splitDir, split.FileName())
		if ok, _ := afero.Exists(fs, p); !ok {
			continue
		}
		m, err := ReadManifest(fs, p)
		if err != nil {
			return err
		}
		out := filepath.Join(outDir, strings.TrimSuffix(split.FileName(), ".json")+".tfrecord")
		if err := WriteSplitTFRecord(fs, root, m, out, numShards); err != nil {
			return errors.WithMessagef(err, "split %q", split)
		}
	}
	return nil
}

// writeTFRecordExample serialises the example and writes it as a TFRecord to w.
func writeTFRecordExample(w io.Writer, e *tensorflow.Example) error {
	enc, err := proto.Marshal(e)
	if err != nil {
		return err
	}

	return tfrecord.Write(w, enc)
}
