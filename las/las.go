// Package las reads and writes LAS 2.0 well-log files: a sectioned text
// header (~V, ~W, ~C, ...) followed by an ~A section of depth-aligned
// numeric samples.
package las

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	lithology "github.com/giecaruff/ImageToLithology"
)

// DefaultNull is the customary LAS null value, used when the ~Well
// section carries no NULL entry.
const DefaultNull = -999.25

// Line is one parsed header line, MNEM.UNIT DATA : DESC. Comment lines
// keep their raw text in Comment and leave the other fields empty.
type Line struct {
	Mnem, Unit, Data, Desc string
	Comment                string
}

// Section is one header section in file order.
type Section struct {
	Key   byte   // capitalized first letter after '~'
	Name  string // full section header line, e.g. "~Curve Information"
	Lines []Line
}

// Curve describes one column of the data section.
type Curve struct {
	Mnem, Unit, Desc string
}

// File is a fully loaded LAS file. Data is column-major: Data[i] holds
// the samples of Curves[i], with null values surfaced as NaN. Sample
// order is kept exactly as read; descending depth stays descending.
type File struct {
	Sections []Section
	DataName string // the ~A section header line
	Null     float64
	Curves   []Curve
	Data     [][]float64
}

// Read parses a LAS file from r. The depth curve (first column) must be
// monotonic, strictly increasing or strictly decreasing.
func Read(r io.Reader) (*File, error) {
	f := &File{Null: DefaultNull}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var dataTokens []string
	inData := false
	for scanner.Scan() {
		line := scanner.Text()
		if inData {
			dataTokens = append(dataTokens, strings.Fields(line)...)
			continue
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
		case strings.HasPrefix(trimmed, "~A"):
			f.DataName = trimmed
			inData = true
		case strings.HasPrefix(trimmed, "~"):
			if len(trimmed) < 2 {
				return nil, fmt.Errorf("%w: unnamed LAS section", lithology.ErrFormat)
			}
			f.Sections = append(f.Sections, Section{
				Key:  upperByte(trimmed[1]),
				Name: trimmed,
			})
		case strings.HasPrefix(trimmed, "#"):
			if n := len(f.Sections); n > 0 {
				f.Sections[n-1].Lines = append(f.Sections[n-1].Lines, Line{Comment: line})
			}
		default:
			if len(f.Sections) == 0 {
				return nil, fmt.Errorf("%w: header line before any LAS section: %q", lithology.ErrFormat, trimmed)
			}
			parsed, err := parseLine(trimmed)
			if err != nil {
				return nil, err
			}
			n := len(f.Sections)
			f.Sections[n-1].Lines = append(f.Sections[n-1].Lines, parsed)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !inData {
		return nil, fmt.Errorf("%w: LAS file has no ~A data section", lithology.ErrFormat)
	}

	f.Curves = curvesFromHeader(f.Sections)
	if len(f.Curves) == 0 {
		return nil, fmt.Errorf("%w: LAS file defines no curves", lithology.ErrFormat)
	}
	if nullText, ok := f.wellEntry("NULL"); ok {
		v, err := strconv.ParseFloat(nullText, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: NULL value %q", lithology.ErrFormat, nullText)
		}
		f.Null = v
	}
	if err := f.parseData(dataTokens); err != nil {
		return nil, err
	}
	return f, nil
}

// Load reads a LAS file from disk.
func Load(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Read(fd)
}

// parseLine splits MNEM.UNIT DATA : DESC. The description starts at the
// last colon, the unit runs from the first dot to the first space.
func parseLine(line string) (Line, error) {
	colon := strings.LastIndex(line, ":")
	if colon < 0 {
		return Line{}, fmt.Errorf("%w: LAS line without ':': %q", lithology.ErrFormat, line)
	}
	desc := strings.TrimSpace(line[colon+1:])
	rest := line[:colon]
	dot := strings.Index(rest, ".")
	if dot < 0 {
		return Line{}, fmt.Errorf("%w: LAS line without '.': %q", lithology.ErrFormat, line)
	}
	mnem := strings.TrimSpace(rest[:dot])
	rest = rest[dot+1:]
	unit := rest
	data := ""
	if sp := strings.Index(rest, " "); sp >= 0 {
		unit = rest[:sp]
		data = strings.TrimSpace(rest[sp+1:])
	}
	return Line{Mnem: mnem, Unit: unit, Data: data, Desc: desc}, nil
}

func curvesFromHeader(sections []Section) []Curve {
	var curves []Curve
	for _, s := range sections {
		if s.Key != 'C' {
			continue
		}
		for _, l := range s.Lines {
			if l.Comment != "" {
				continue
			}
			curves = append(curves, Curve{Mnem: l.Mnem, Unit: l.Unit, Desc: l.Desc})
		}
	}
	return curves
}

func (f *File) wellEntry(mnem string) (string, bool) {
	for _, s := range f.Sections {
		if s.Key != 'W' {
			continue
		}
		for _, l := range s.Lines {
			if l.Mnem == mnem {
				return l.Data, true
			}
		}
	}
	return "", false
}

func (f *File) parseData(tokens []string) error {
	nc := len(f.Curves)
	if len(tokens)%nc != 0 {
		return fmt.Errorf("%w: %d data values do not fill rows of %d curves", lithology.ErrFormat, len(tokens), nc)
	}
	ns := len(tokens) / nc
	f.Data = make([][]float64, nc)
	for i := range f.Data {
		f.Data[i] = make([]float64, ns)
	}
	for k, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("%w: data value %q", lithology.ErrFormat, tok)
		}
		if v == f.Null {
			v = math.NaN()
		}
		f.Data[k%nc][k/nc] = v
	}
	return f.checkDepthMonotonic()
}

func (f *File) checkDepthMonotonic() error {
	depth := f.Data[0]
	if len(depth) < 2 {
		return nil
	}
	ascending := depth[1] > depth[0]
	for i := 1; i < len(depth); i++ {
		step := depth[i] - depth[i-1]
		if math.IsNaN(step) || step == 0 || (step > 0) != ascending {
			return fmt.Errorf("%w: depth curve is not monotonic at sample %d", lithology.ErrFormat, i)
		}
	}
	return nil
}

// CurveNames returns the mnemonics of all curves in order.
func (f *File) CurveNames() []string {
	names := make([]string, len(f.Curves))
	for i, c := range f.Curves {
		names[i] = c.Mnem
	}
	return names
}

// CurveIndex finds a curve by mnemonic.
func (f *File) CurveIndex(mnem string) (int, bool) {
	for i, c := range f.Curves {
		if c.Mnem == mnem {
			return i, true
		}
	}
	return 0, false
}

// AppendCurve adds one curve to the file, extending both the ~C section
// and the data block. Existing samples and their order are untouched.
// NaN samples are written as the file's null value.
func (f *File) AppendCurve(mnem, unit, desc string, samples []float64) error {
	if len(f.Data) > 0 && len(samples) != len(f.Data[0]) {
		return fmt.Errorf("%w: curve %s has %d samples, file has %d",
			lithology.ErrConfig, mnem, len(samples), len(f.Data[0]))
	}
	appended := false
	for i := range f.Sections {
		if f.Sections[i].Key != 'C' {
			continue
		}
		f.Sections[i].Lines = append(f.Sections[i].Lines, Line{Mnem: mnem, Unit: unit, Desc: desc})
		appended = true
		break
	}
	if !appended {
		f.Sections = append(f.Sections, Section{
			Key:   'C',
			Name:  "~Curve Information",
			Lines: []Line{{Mnem: mnem, Unit: unit, Desc: desc}},
		})
	}
	f.Curves = append(f.Curves, Curve{Mnem: mnem, Unit: unit, Desc: desc})
	f.Data = append(f.Data, samples)
	return nil
}

// Write emits the full LAS file: header sections in original order, the
// ~A line, then one row per sample.
func (f *File) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, s := range f.Sections {
		fmt.Fprintln(bw, s.Name)
		widthPrefix, widthData := sectionWidths(s)
		for _, l := range s.Lines {
			if l.Comment != "" {
				fmt.Fprintln(bw, l.Comment)
				continue
			}
			prefix := fmt.Sprintf(" %s.%s", l.Mnem, l.Unit)
			fmt.Fprintf(bw, "%-*s %-*s : %s\n", widthPrefix, prefix, widthData, l.Data, l.Desc)
		}
	}
	name := f.DataName
	if name == "" {
		name = "~ASCII Log Data"
	}
	fmt.Fprintln(bw, name)

	ns := 0
	if len(f.Data) > 0 {
		ns = len(f.Data[0])
	}
	for j := 0; j < ns; j++ {
		for i := range f.Data {
			v := f.Data[i][j]
			if math.IsNaN(v) {
				v = f.Null
			}
			fmt.Fprintf(bw, "%12.4f", v)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

func sectionWidths(s Section) (prefix, data int) {
	for _, l := range s.Lines {
		if l.Comment != "" {
			continue
		}
		prefix = max(prefix, len(l.Mnem)+len(l.Unit)+2)
		data = max(data, len(l.Data))
	}
	return prefix, data
}

func upperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
