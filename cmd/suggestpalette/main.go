// Command suggestpalette extracts candidate reference colors from a
// lithology raster and writes them as a palette CSV, a starting point
// for a hand-curated code-to-color mapping.
package main

import (
	"flag"
	"log"
	"os"
	"unicode/utf8"

	lithology "github.com/giecaruff/ImageToLithology"
	"go.uber.org/zap"
)

func main() {
	imageFile := flag.String("imagefilename", "", "input image file")
	colors := flag.Int("colors", 8, "number of palette colors to suggest")
	method := flag.String("method", "dominant", "extraction method: dominant or kmeans")
	separator := flag.String("csvcolumnseparator", ",", "CSV column separator")
	colorFormat := flag.String("csvcolorformat", "html", "output color format: html, rgb or int")
	outputFile := flag.String("outputfilename", "", "output palette CSV file")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync() //nolint:errcheck

	if *imageFile == "" || *outputFile == "" {
		logger.Fatal("imagefilename and outputfilename are required")
	}
	format, err := lithology.ParseColorFormat(*colorFormat)
	if err != nil {
		logger.Fatal("color format", zap.Error(err))
	}
	suggestMethod, err := lithology.ParseSuggestMethod(*method)
	if err != nil {
		logger.Fatal("method", zap.Error(err))
	}

	img, err := lithology.ReadImage(*imageFile)
	if err != nil {
		logger.Fatal("read image", zap.String("path", *imageFile), zap.Error(err))
	}
	palette, err := lithology.SuggestPalette(img, *colors, suggestMethod)
	if err != nil {
		logger.Fatal("suggest palette", zap.Error(err))
	}
	logger.Info("suggested palette",
		zap.Int("colors", palette.Len()),
		zap.Stringer("method", suggestMethod))

	out, err := os.Create(*outputFile)
	if err != nil {
		logger.Fatal("create output", zap.String("path", *outputFile), zap.Error(err))
	}
	err = lithology.WritePaletteCSV(out, palette, separatorRune(logger, *separator), format)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(*outputFile)
		logger.Fatal("write palette", zap.String("path", *outputFile), zap.Error(err))
	}
	logger.Info("wrote palette CSV", zap.String("path", *outputFile))
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
