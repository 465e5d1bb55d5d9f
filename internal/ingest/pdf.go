package ingest

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/reader"
	"seehuhn.de/go/postscript/cid"

	"github.com/ppiankov/paperverify/internal/model"
)

// pdfNumberPattern matches numeric tokens in extracted page text
var pdfNumberPattern = regexp.MustCompile(`[0-9][0-9,]*\.?[0-9]*`)

// PDFAdapter loads numeric values from PDF result files by extracting the
// text of each page and scanning it for numeric tokens
type PDFAdapter struct{}

// NewPDFAdapter creates a new PDF adapter
func NewPDFAdapter() *PDFAdapter {
	return &PDFAdapter{}
}

func (a *PDFAdapter) Name() string { return "pdf" }

func (a *PDFAdapter) Extensions() []string { return []string{".pdf"} }

func (a *PDFAdapter) Load(path string) ([]model.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r, err := pdf.NewReader(f, nil)
	if err != nil {
		return nil, fmt.Errorf("open reader: %w", err)
	}

	numPages, err := pagetree.NumPages(r)
	if err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}

	modelName, dataset := parseFilename(path)

	var buf strings.Builder
	contents := reader.New(r, nil)
	contents.TextEvent = func(op reader.TextEvent, _ float64) {
		switch op {
		case reader.TextEventSpace:
			buf.WriteByte(' ')
		case reader.TextEventNL, reader.TextEventMove:
			buf.WriteByte('\n')
		}
	}
	contents.Character = func(_ cid.CID, text string) error {
		buf.WriteString(text)
		return nil
	}

	var observations []model.Observation
	for pageNo := 1; pageNo <= numPages; pageNo++ {
		_, pageDict, err := pagetree.GetPage(r, pageNo-1)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNo, err)
		}

		buf.Reset()
		if err := contents.ParsePage(pageDict, matrix.Identity); err != nil {
			return nil, fmt.Errorf("parse page %d: %w", pageNo, err)
		}

		for _, token := range pdfNumberPattern.FindAllString(buf.String(), -1) {
			value, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", ""), 64)
			if err != nil || value == 0 {
				continue
			}
			observations = append(observations, model.Observation{
				Value:      value,
				SourceFile: path,
				Locator:    fmt.Sprintf("page%d", pageNo),
				Model:      modelName,
				Dataset:    dataset,
			})
		}
	}

	return observations, nil
}
