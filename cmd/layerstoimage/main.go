// Command layerstoimage is the inverse of imagetolayers: it paints a
// raster image from a layer CSV and a palette CSV, for quality control
// of an extraction.
package main

import (
	"flag"
	"log"
	"math"
	"unicode/utf8"

	lithology "github.com/giecaruff/ImageToLithology"
	"go.uber.org/zap"
)

func main() {
	layersFile := flag.String("layersfilename", "", "input layer CSV file")
	layersCodeColumn := flag.Int("layerscodecolumn", 1, "1-based layer code column")
	layersTopColumn := flag.Int("layerstopcolumn", 2, "1-based layer top column")
	layersBottomColumn := flag.Int("layersbottomcolumn", 3, "1-based layer bottom column")
	layersSkipLines := flag.Int("layersskiplines", 1, "layer header lines to skip")
	csvFile := flag.String("csvfilename", "", "palette CSV file mapping codes to colors")
	codeColumn := flag.Int("csvcodecolumn", 1, "1-based palette code column")
	colorColumn := flag.Int("csvcolorcolumn", 2, "1-based palette color column")
	skipLines := flag.Int("csvskiplines", 1, "palette header lines to skip")
	separator := flag.String("csvcolumnseparator", ",", "CSV column separator")
	emptyCell := flag.String("csvemptycell", "", "sentinel marking an open-ended boundary")
	colorFormat := flag.String("csvcolorformat", "html", "palette color format: html, rgb or int")
	nullColor := flag.String("nullcolor", "#000000", "color for rows covered by no layer")
	topDepth := flag.Float64("topdepth", math.NaN(), "depth of the first output row")
	bottomDepth := flag.Float64("bottomdepth", math.NaN(), "depth of the last output row")
	topShift := flag.Float64("topshift", 0, "additive shift for layer tops")
	bottomShift := flag.Float64("bottomshift", 0, "additive shift for layer bottoms")
	width := flag.Int("width", 0, "output image width in pixels")
	height := flag.Int("height", 0, "output image height in pixels")
	outputFile := flag.String("outputfilename", "", "output image file")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync() //nolint:errcheck

	if *layersFile == "" || *csvFile == "" || *outputFile == "" {
		logger.Fatal("layersfilename, csvfilename and outputfilename are required")
	}
	format, err := lithology.ParseColorFormat(*colorFormat)
	if err != nil {
		logger.Fatal("color format", zap.Error(err))
	}
	sep := separatorRune(logger, *separator)

	layers, _, err := lithology.LoadLayersCSV(*layersFile, lithology.LayerCSVOptions{
		Separator:    sep,
		SkipLines:    *layersSkipLines,
		CodeColumn:   *layersCodeColumn,
		TopColumn:    *layersTopColumn,
		BottomColumn: *layersBottomColumn,
		EmptyCell:    *emptyCell,
	})
	if err != nil {
		logger.Fatal("load layers", zap.String("path", *layersFile), zap.Error(err))
	}
	palette, err := lithology.LoadPaletteCSV(*csvFile, lithology.PaletteCSVOptions{
		Separator:   sep,
		SkipLines:   *skipLines,
		CodeColumn:  *codeColumn,
		ColorColumn: *colorColumn,
		ColorFormat: format,
	})
	if err != nil {
		logger.Fatal("load palette", zap.String("path", *csvFile), zap.Error(err))
	}
	null, err := lithology.ParseColor(*nullColor, format)
	if err != nil {
		logger.Fatal("null color", zap.Error(err))
	}

	mapped := !math.IsNaN(*topDepth) && !math.IsNaN(*bottomDepth)
	mapper, err := lithology.NewDepthMapper(*height, *topDepth, *bottomDepth, mapped)
	if err != nil {
		logger.Fatal("depth mapping", zap.Error(err))
	}

	img, err := lithology.Render(layers, palette, mapper, lithology.RenderOptions{
		Width:       *width,
		Height:      *height,
		NullColor:   null,
		TopShift:    *topShift,
		BottomShift: *bottomShift,
	})
	if err != nil {
		logger.Fatal("render image", zap.Error(err))
	}
	if err := lithology.WriteImage(*outputFile, img); err != nil {
		logger.Fatal("write image", zap.String("path", *outputFile), zap.Error(err))
	}
	logger.Info("wrote image",
		zap.String("path", *outputFile),
		zap.Int("width", *width),
		zap.Int("height", *height),
		zap.Int("layers", len(layers)))
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
