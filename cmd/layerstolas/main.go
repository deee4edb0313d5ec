// Command layerstolas aligns a layer CSV against the depth samples of
// an existing LAS well-log file and writes a copy of that file with one
// appended lithology-code curve.
package main

import (
	"flag"
	"log"
	"os"
	"unicode/utf8"

	lithology "github.com/giecaruff/ImageToLithology"
	"github.com/giecaruff/ImageToLithology/las"
	"go.uber.org/zap"
)

const curveDescription = "Created from an image using ImageToLithology"

func main() {
	layersFile := flag.String("layersfilename", "", "input layer CSV file")
	layersCodeColumn := flag.Int("layerscodecolumn", 1, "1-based layer code column")
	layersTopColumn := flag.Int("layerstopcolumn", 2, "1-based layer top column")
	layersBottomColumn := flag.Int("layersbottomcolumn", 3, "1-based layer bottom column")
	layersSkipLines := flag.Int("layersskiplines", 1, "layer header lines to skip")
	csvFile := flag.String("csvfilename", "", "optional code translation CSV file")
	code1Column := flag.Int("csvcode1column", 1, "1-based source code column of the translation CSV")
	code2Column := flag.Int("csvcode2column", 2, "1-based target code column of the translation CSV")
	skipLines := flag.Int("csvskiplines", 1, "translation header lines to skip")
	separator := flag.String("csvcolumnseparator", ",", "CSV column separator")
	emptyCell := flag.String("csvemptycell", "", "sentinel marking an open-ended boundary")
	topShift := flag.Float64("topshift", 0, "additive shift for layer tops")
	bottomShift := flag.Float64("bottomshift", 0, "additive shift for layer bottoms")
	wellFile := flag.String("wellfilename", "", "input LAS file")
	depthMnem := flag.String("depthmnem", "", "mnemonic of the depth curve (default: first curve)")
	mnem := flag.String("mnem", "", "mnemonic of the new curve")
	unit := flag.String("unit", "", "unit of the new curve")
	nullCode := flag.Float64("nullcode", -1, "code emitted for samples covered by no layer")
	interpolate := flag.Bool("interpolate", false, "interpolate codes across gaps between layers")
	outputFile := flag.String("outputfilename", "", "output LAS file")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync() //nolint:errcheck

	if *layersFile == "" || *wellFile == "" || *outputFile == "" {
		logger.Fatal("layersfilename, wellfilename and outputfilename are required")
	}
	sep := separatorRune(logger, *separator)

	layers, layersHeader, err := lithology.LoadLayersCSV(*layersFile, lithology.LayerCSVOptions{
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

	var translation map[string]string
	var translationHeader []string
	if *csvFile != "" {
		translation, translationHeader, err = lithology.LoadTranslationCSV(*csvFile, lithology.TranslationCSVOptions{
			Separator:    sep,
			SkipLines:    *skipLines,
			FromColumn:   *code1Column,
			TargetColumn: *code2Column,
		})
		if err != nil {
			logger.Fatal("load translation", zap.String("path", *csvFile), zap.Error(err))
		}
	}

	well, err := las.Load(*wellFile)
	if err != nil {
		logger.Fatal("read LAS", zap.String("path", *wellFile), zap.Error(err))
	}
	depthIndex := 0
	if *depthMnem != "" {
		var ok bool
		depthIndex, ok = well.CurveIndex(*depthMnem)
		if !ok {
			logger.Fatal("depth curve not in LAS file",
				zap.String("mnem", *depthMnem),
				zap.Strings("curves", well.CurveNames()))
		}
	}
	depths := well.Data[depthIndex]

	values, err := lithology.MergeCurve(layers, depths, lithology.MergeOptions{
		Translation: translation,
		Translate:   translation != nil,
		NullCode:    *nullCode,
		Interpolate: *interpolate,
		TopShift:    *topShift,
		BottomShift: *bottomShift,
	})
	if err != nil {
		logger.Fatal("merge curve", zap.Error(err))
	}

	name := curveName(*mnem, translationHeader, *code2Column, layersHeader, *layersCodeColumn)
	if err := well.AppendCurve(name, *unit, curveDescription, values); err != nil {
		logger.Fatal("append curve", zap.String("mnem", name), zap.Error(err))
	}
	logger.Info("merged lithology curve",
		zap.String("mnem", name),
		zap.Int("samples", len(values)),
		zap.Int("layers", len(layers)),
		zap.Bool("interpolate", *interpolate))

	out, err := os.Create(*outputFile)
	if err != nil {
		logger.Fatal("create output", zap.String("path", *outputFile), zap.Error(err))
	}
	err = well.Write(out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(*outputFile)
		logger.Fatal("write LAS", zap.String("path", *outputFile), zap.Error(err))
	}
	logger.Info("wrote LAS", zap.String("path", *outputFile))
}

// curveName falls back from the explicit mnemonic to the translation
// CSV's target column title, then the layer CSV's code column title.
func curveName(mnem string, translationHeader []string, code2Column int, layersHeader []string, codeColumn int) string {
	if mnem != "" {
		return mnem
	}
	if code2Column >= 1 && code2Column <= len(translationHeader) {
		if t := translationHeader[code2Column-1]; t != "" {
			return t
		}
	}
	if codeColumn >= 1 && codeColumn <= len(layersHeader) {
		if t := layersHeader[codeColumn-1]; t != "" {
			return t
		}
	}
	return "CODE"
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
