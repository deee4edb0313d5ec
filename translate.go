package lithology

import (
	"io"
	"os"
)

// TranslationCSVOptions describes the layout of a code-to-code
// translation CSV. Column indices are 1-based.
type TranslationCSVOptions struct {
	Separator    rune // default ','
	SkipLines    int  // default 1
	FromColumn   int  // default 1
	TargetColumn int  // default 2
}

// DefaultTranslationCSVOptions mirrors the historical defaults.
func DefaultTranslationCSVOptions() TranslationCSVOptions {
	return TranslationCSVOptions{
		Separator:    ',',
		SkipLines:    1,
		FromColumn:   1,
		TargetColumn: 2,
	}
}

// ReadTranslationCSV parses a code translation table. Duplicate source
// codes keep the first mapping. The returned header is the first skipped
// line, if any, used to derive a default curve mnemonic.
func ReadTranslationCSV(r io.Reader, opt TranslationCSVOptions) (map[string]string, []string, error) {
	records, header, err := readCSVHeader(r, opt.Separator, opt.SkipLines)
	if err != nil {
		return nil, nil, err
	}
	table := make(map[string]string, len(records))
	for _, rec := range records {
		from, err := field(rec, opt.FromColumn)
		if err != nil {
			return nil, nil, err
		}
		to, err := field(rec, opt.TargetColumn)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := table[from]; !dup {
			table[from] = to
		}
	}
	return table, header, nil
}

// LoadTranslationCSV reads a translation table from a file.
func LoadTranslationCSV(path string, opt TranslationCSVOptions) (map[string]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadTranslationCSV(f, opt)
}
