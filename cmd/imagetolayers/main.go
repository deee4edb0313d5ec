// Command imagetolayers classifies a lithology raster against a palette
// CSV and writes the resulting layer list (code, top, bottom) as CSV.
package main

import (
	"flag"
	"log"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	lithology "github.com/giecaruff/ImageToLithology"
	"go.uber.org/zap"
)

func main() {
	imageFile := flag.String("imagefilename", "", "input image file")
	csvFile := flag.String("csvfilename", "", "palette CSV file mapping codes to colors")
	codeColumn := flag.Int("csvcodecolumn", 1, "1-based palette code column")
	colorColumn := flag.Int("csvcolorcolumn", 2, "1-based palette color column")
	skipLines := flag.Int("csvskiplines", 1, "palette header lines to skip")
	separator := flag.String("csvcolumnseparator", ",", "CSV column separator")
	colorFormat := flag.String("csvcolorformat", "html", "palette color format: html, rgb or int")
	metricName := flag.String("distancemetric", "human", "color distance metric: human, l1, l2 or max")
	maxDistance := flag.Float64("maximumdistance", 0.02, "maximum classification distance")
	dontFillGaps := flag.Bool("dontfillgaps", false, "do not absorb gaps between same-code layers")
	topDepth := flag.Float64("topdepth", math.NaN(), "depth of the first image row")
	bottomDepth := flag.Float64("bottomdepth", math.NaN(), "depth of the last image row")
	topShift := flag.Float64("topshift", 0, "additive shift for layer tops")
	bottomShift := flag.Float64("bottomshift", 0, "additive shift for layer bottoms")
	columnTitles := flag.String("columntitles", "CODE,TOP,BOTTOM", "output column titles, comma separated")
	outputFile := flag.String("outputfilename", "", "output layer CSV file")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync() //nolint:errcheck

	if *imageFile == "" || *csvFile == "" || *outputFile == "" {
		logger.Fatal("imagefilename, csvfilename and outputfilename are required")
	}
	format, err := lithology.ParseColorFormat(*colorFormat)
	if err != nil {
		logger.Fatal("color format", zap.Error(err))
	}
	metric, err := lithology.ParseMetric(*metricName)
	if err != nil {
		logger.Fatal("distance metric", zap.Error(err))
	}
	titles := strings.Split(*columnTitles, ",")
	if len(titles) != 3 {
		logger.Fatal("columntitles needs exactly three comma-separated titles", zap.String("got", *columnTitles))
	}

	palette, err := lithology.LoadPaletteCSV(*csvFile, lithology.PaletteCSVOptions{
		Separator:   separatorRune(logger, *separator),
		SkipLines:   *skipLines,
		CodeColumn:  *codeColumn,
		ColorColumn: *colorColumn,
		ColorFormat: format,
	})
	if err != nil {
		logger.Fatal("load palette", zap.String("path", *csvFile), zap.Error(err))
	}
	img, err := lithology.ReadImage(*imageFile)
	if err != nil {
		logger.Fatal("read image", zap.String("path", *imageFile), zap.Error(err))
	}

	mapped := !math.IsNaN(*topDepth) && !math.IsNaN(*bottomDepth)
	mapper, err := lithology.NewDepthMapper(img.Bounds().Dy(), *topDepth, *bottomDepth, mapped)
	if err != nil {
		logger.Fatal("depth mapping", zap.Error(err))
	}

	layers, err := lithology.NewExtractor(img, palette, mapper).Extract(lithology.ExtractOptions{
		Metric:      metric,
		MaxDistance: *maxDistance,
		FillGaps:    !*dontFillGaps,
		TopShift:    *topShift,
		BottomShift: *bottomShift,
	})
	if err != nil {
		logger.Fatal("extract layers", zap.Error(err))
	}
	logger.Info("extracted layers",
		zap.Int("layers", len(layers)),
		zap.Int("rows", img.Bounds().Dy()),
		zap.Int("paletteEntries", palette.Len()),
		zap.Stringer("metric", metric))

	out, err := os.Create(*outputFile)
	if err != nil {
		logger.Fatal("create output", zap.String("path", *outputFile), zap.Error(err))
	}
	err = lithology.WriteLayersCSV(out, layers, [3]string{titles[0], titles[1], titles[2]}, separatorRune(logger, *separator))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(*outputFile)
		logger.Fatal("write layers", zap.String("path", *outputFile), zap.Error(err))
	}
	logger.Info("wrote layer CSV", zap.String("path", *outputFile))
}

func separatorRune(logger *zap.Logger, s string) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		logger.Fatal("column separator must be a single character", zap.String("got", s))
	}
	return r
}

func newLogger(verbose bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	return l
}
