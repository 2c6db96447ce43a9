// Prepares computer vision datasets for training: creates the filelists and splits of a dataset,
// writes its parameter files, creates scaled copies, converts segmentation ground truth to train ids
// and exports splits as TFRecords.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/sensorable/dsprep"
)

var (
	command string   // The subcommand.
	args    []string // The positional arguments after the subcommand.

	configFilePath string // The YAML configuration file.
	verbose        bool   // Enable debug logging.
	rewrite        bool   // Recreate an existing filelist.

	splitName     string // The split folder suffix the scaler and converter read from.
	newName       string // The name of the scaled dataset.
	outputSize    string // The target image size as HxW.
	scaleFactor   int    // The integer downscaling factor.
	keys          string // A comma-separated list of categories to scale.
	adaptSplits   string // A comma-separated list of split folders to adapt.
	labelsMode    string // Overrides the labels mode of the dataset parameters.
	labelSchema   string // A JSON label schema to use instead of the built-in tables.
	adaptOnly     bool   // Only restore the train id manifest entries.
	recordOutDir  string // The TFRecord output directory.
	numShardFiles int    // The number of shard files to create.
)

const usage = `Usage of %s: [flags] <command> [arguments]

Commands:
  filelist <dataset>                 create basic_files.json (-rewrite to recreate)
  split <dataset> [split...]         create the predefined splits
  parameters [dataset...]            write parameters.json for the datasets present
  scale <dataset>                    create a scaled copy (-new-name, -size or -factor)
  adapt-splits <dataset> <scaled> <split...>
                                     copy split folders to an existing scaled dataset
  trainid <dataset>                  convert segmentation images to train ids
  tfrecord <dataset>                 export the split files as TFRecords (-out)
  labels <dataset>                   print the label table of a dataset

Flags:
`

func init() {
	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, usage, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}

	flag.StringVar(&configFilePath, "config", "", "The configuration file `path` (default $"+
		dsprep.ConfigEnv+" or "+dsprep.DefaultConfigFile+")")
	flag.BoolVar(&verbose, "v", false, "Enable debug logging")
	flag.BoolVar(&rewrite, "rewrite", false, "Recreate the filelist even if it is up to date")

	flag.StringVar(&splitName, "split", "", "Read the split files from <dataset>_`name`")
	flag.StringVar(&newName, "new-name", "", "The `name` of the scaled dataset")
	flag.StringVar(&outputSize, "size", "", "The output image `size` as HxW")
	flag.IntVar(&scaleFactor, "factor", 0, "The integer downscaling `factor`")
	flag.StringVar(&keys, "keys", "", "Comma-separated list of categories to scale (empty scales all)")
	flag.StringVar(&adaptSplits, "adapt-splits", "",
		"Comma-separated list of split folders (`split[,...]`) to adapt too")
	flag.StringVar(&labelsMode, "labels-mode", "",
		"The `mode` of the segmentation images {fromid, fromrgb, fromtrainid}")
	flag.StringVar(&labelSchema, "label-schema", "", "A JSON label schema `file`")
	flag.BoolVar(&adaptOnly, "adapt-only", false,
		"Only restore the train id entries of the manifests")
	flag.StringVar(&recordOutDir, "out", "", "The TFRecord output `directory`")
	flag.IntVar(&numShardFiles, "num-shards", 1, "The number of shard files to create (tfrecord only)")
}

func printUsageAndExit(msg string) {
	log.Error().Msg(msg)
	flag.Usage()
	os.Exit(1)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func main() {
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if flag.NArg() < 1 {
		printUsageAndExit("Missing command")
	}
	command, args = flag.Arg(0), flag.Args()[1:]

	fs := afero.NewOsFs()
	conf, err := dsprep.LoadConfig(fs, configFilePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load the configuration")
	}
	log.Debug().Str("data_path", conf.DataPath).Int("workers", conf.Workers).Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if command == "parameters" {
		if err := dsprep.WriteParameterFiles(fs, conf.DataPath, args...); err != nil {
			log.Fatal().Err(err).Msg("Failed to write the parameter files")
		}
		return
	}

	if len(args) < 1 {
		printUsageAndExit("Missing dataset argument")
	}
	dataset := args[0]

	switch command {
	case "filelist":
		err = createFilelist(fs, conf, dataset)
	case "split":
		err = createSplits(fs, conf, dataset, args[1:])
	case "scale":
		err = scale(ctx, fs, conf, dataset)
	case "adapt-splits":
		if len(args) < 3 {
			printUsageAndExit("adapt-splits requires the scaled dataset and at least one split")
		}
		err = dsprep.NewScaler(fs, conf.DataPath, dataset, "").AdaptSplits(args[1], args[2:]...)
	case "trainid":
		err = convertTrainIDs(ctx, fs, conf, dataset)
	case "tfrecord":
		err = exportTFRecords(fs, conf, dataset)
	case "labels":
		err = printLabels(fs, dataset)
	default:
		printUsageAndExit("Unknown command " + strconv.Quote(command))
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", command).Str("dataset", dataset).Msg("Command failed")
	}
	log.Info().Str("command", command).Str("dataset", dataset).Msg("Done")
}

func createFilelist(fs afero.Fs, conf dsprep.Config, dataset string) error {
	creator, err := dsprep.NewDatasetCreator(fs, conf.DataPath, dataset, rewrite)
	if err != nil {
		return err
	}
	if creator.CheckState() {
		log.Info().Str("dataset", dataset).Msg("Filelist is up to date")
		return nil
	}
	_, err = creator.CreateDataset()
	return err
}

func createSplits(fs afero.Fs, conf dsprep.Config, dataset string, names []string) error {
	splitter, err := dsprep.NewDatasetSplitter(fs, conf.DataPath, dataset)
	if err != nil {
		return err
	}
	return splitter.CreateSplits(names...)
}

func scale(ctx context.Context, fs afero.Fs, conf dsprep.Config, dataset string) error {
	opts := dsprep.ScaleOptions{
		NewName:       newName,
		ScaleFactor:   scaleFactor,
		Keys:          splitList(keys),
		SplitsToAdapt: splitList(adaptSplits),
	}
	if outputSize != "" {
		parts := strings.Split(strings.ToLower(outputSize), "x")
		if len(parts) != 2 {
			printUsageAndExit("Invalid -size, expected HxW")
		}
		for i, p := range parts {
			v, err := strconv.Atoi(p)
			if err != nil || v <= 0 {
				printUsageAndExit("Invalid -size, expected HxW")
			}
			opts.OutputSize[i] = v
		}
	}

	scaler := dsprep.NewScaler(fs, conf.DataPath, dataset, splitName)
	scaler.Workers = conf.Workers
	return scaler.Process(ctx, opts)
}

// labelsFor returns the label table and labels mode of dataset. The flags take precedence over
// the dataset parameters.
func labelsFor(fs afero.Fs, conf dsprep.Config, dataset string) (*dsprep.LabelTable, dsprep.LabelsMode, error) {
	params, err := dsprep.ReadParameters(fs, filepath.Join(conf.DataPath, dataset, dsprep.ParametersName))
	if err != nil {
		p, indexErr := dsprep.ParametersFor(dataset)
		if indexErr != nil {
			return nil, "", err
		}
		params = &p
	}

	mode := dsprep.LabelsMode(labelsMode)
	if mode == "" && params.LabelsMode != nil {
		mode = dsprep.LabelsMode(*params.LabelsMode)
	}

	var table *dsprep.LabelTable
	switch {
	case labelSchema != "":
		table, err = dsprep.LoadLabelSchema(fs, labelSchema)
	case params.Labels != nil:
		table, err = dsprep.DatasetLabels(*params.Labels)
	default:
		table, err = dsprep.DatasetLabels(dataset)
	}
	return table, mode, err
}

func convertTrainIDs(ctx context.Context, fs afero.Fs, conf dsprep.Config, dataset string) error {
	table, mode, err := labelsFor(fs, conf, dataset)
	if err != nil {
		return err
	}
	converter, err := dsprep.NewTrainIDConverter(fs, conf.DataPath, dataset, table, mode, splitName)
	if err != nil {
		return err
	}
	converter.Workers = conf.Workers
	if adaptOnly {
		return converter.AdaptManifests(splitList(adaptSplits))
	}
	return converter.Process(ctx, splitList(adaptSplits))
}

func exportTFRecords(fs afero.Fs, conf dsprep.Config, dataset string) error {
	if recordOutDir == "" {
		printUsageAndExit("Missing TFRecord output directory")
	}
	root := filepath.Join(conf.DataPath, dataset)
	splitDir := root
	if splitName != "" {
		splitDir = root + "_" + splitName
	}
	return dsprep.ExportTFRecords(fs, root, splitDir, filepath.Clean(recordOutDir), numShardFiles)
}

func printLabels(fs afero.Fs, dataset string) error {
	var table *dsprep.LabelTable
	var err error
	if labelSchema != "" {
		table, err = dsprep.LoadLabelSchema(fs, labelSchema)
	} else {
		table, err = dsprep.DatasetLabels(dataset)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "name\tid\ttrainId\tcategory\tcolor")
	for _, l := range table.Labels() {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%d,%d,%d\n", l.Name, l.ID, l.TrainID, l.Category,
			l.Color[0], l.Color[1], l.Color[2])
	}
	return w.Flush()
}
