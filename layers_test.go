package lithology

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestReadLayersCSV(t *testing.T) {
	src := "CODE,TOP,BOTTOM\n21,100,103\n57,104,106\n48,107,109\n"
	ll, header, err := ReadLayersCSV(csvReader(src), DefaultLayerCSVOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(header) != 3 || header[0] != "CODE" {
		t.Errorf("header = %v", header)
	}
	if len(ll) != 3 || ll[1] != (Layer{Code: "57", Top: 104, Bottom: 106}) {
		t.Errorf("layers = %v", ll)
	}
}

func TestReadLayersCSVOpenBoundaries(t *testing.T) {
	src := "CODE,TOP,BOTTOM\n21,,103\n57,104,\n"
	ll, _, err := ReadLayersCSV(csvReader(src), DefaultLayerCSVOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(ll[0].Top) || ll[0].Bottom != 103 {
		t.Errorf("first layer = %+v, want open top", ll[0])
	}
	if ll[1].Top != 104 || !math.IsNaN(ll[1].Bottom) {
		t.Errorf("last layer = %+v, want open bottom", ll[1])
	}
}

func TestReadLayersCSVEmptyCellSentinel(t *testing.T) {
	opt := DefaultLayerCSVOptions()
	opt.EmptyCell = "NA"
	src := "CODE,TOP,BOTTOM\n21,NA,103\n57,104,NA\n"
	ll, _, err := ReadLayersCSV(csvReader(src), opt)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(ll[0].Top) || !math.IsNaN(ll[1].Bottom) {
		t.Errorf("sentinel not honored: %v", ll)
	}
}

func TestReadLayersCSVRejectsInteriorEmptyCell(t *testing.T) {
	src := "CODE,TOP,BOTTOM\n21,100,\n57,104,106\n"
	if _, _, err := ReadLayersCSV(csvReader(src), DefaultLayerCSVOptions()); !errors.Is(err, ErrFormat) {
		t.Errorf("interior empty bottom: got %v, want ErrFormat", err)
	}
	src = "CODE,TOP,BOTTOM\n21,100,103\n57,,106\n"
	if _, _, err := ReadLayersCSV(csvReader(src), DefaultLayerCSVOptions()); !errors.Is(err, ErrFormat) {
		t.Errorf("interior empty top: got %v, want ErrFormat", err)
	}
}

func TestWriteLayersCSVRoundTrip(t *testing.T) {
	ll := LayerList{
		{Code: "21", Top: 100, Bottom: 103.5},
		{Code: "57", Top: 104, Bottom: 106},
	}
	var sb strings.Builder
	if err := WriteLayersCSV(&sb, ll, [3]string{"CODE", "TOP", "BOTTOM"}, ','); err != nil {
		t.Fatal(err)
	}
	back, header, err := ReadLayersCSV(csvReader(sb.String()), DefaultLayerCSVOptions())
	if err != nil {
		t.Fatal(err)
	}
	if header[2] != "BOTTOM" {
		t.Errorf("header = %v", header)
	}
	if len(back) != 2 || back[0] != ll[0] || back[1] != ll[1] {
		t.Errorf("round trip: got %v, want %v", back, ll)
	}
}

func TestLayerListFind(t *testing.T) {
	ll := LayerList{
		{Code: "a", Top: 100, Bottom: 103},
		{Code: "b", Top: 103, Bottom: 106},
	}
	// Shared boundary: the first containing layer wins.
	if i, ok := ll.Find(103); !ok || i != 0 {
		t.Errorf("Find(103) = %d, %v; want 0", i, ok)
	}
	if i, ok := ll.Find(105); !ok || i != 1 {
		t.Errorf("Find(105) = %d, %v; want 1", i, ok)
	}
	if _, ok := ll.Find(99); ok {
		t.Error("Find(99) matched")
	}
}

func TestLayerListSpan(t *testing.T) {
	ll := LayerList{
		{Code: "a", Top: 100, Bottom: 103},
		{Code: "b", Top: 104, Bottom: 109},
	}
	top, bottom, ok := ll.Span()
	if !ok || top != 100 || bottom != 109 {
		t.Errorf("Span() = %g, %g, %v", top, bottom, ok)
	}
	if _, _, ok := (LayerList{}).Span(); ok {
		t.Error("empty span reported covered")
	}
}
