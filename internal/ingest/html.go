package ingest

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/paperverify/internal/model"
)

// HTMLAdapter loads numeric cell values from tables in HTML result exports
type HTMLAdapter struct{}

// NewHTMLAdapter creates a new HTML adapter
func NewHTMLAdapter() *HTMLAdapter {
	return &HTMLAdapter{}
}

func (a *HTMLAdapter) Name() string { return "html" }

func (a *HTMLAdapter) Extensions() []string { return []string{".html", ".htm"} }

func (a *HTMLAdapter) Load(path string) ([]model.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	modelName, dataset := parseFilename(path)

	var observations []model.Observation
	for tableIdx, table := range findAll(doc, "table") {
		var headers []string
		for rowIdx, row := range findAll(table, "tr") {
			cells := findCells(row)
			if rowIdx == 0 {
				headers = make([]string, len(cells))
				for i, cell := range cells {
					headers[i] = nodeText(cell)
				}
			}
			for colIdx, cell := range cells {
				text := strings.ReplaceAll(strings.TrimSpace(nodeText(cell)), ",", "")
				value, err := strconv.ParseFloat(text, 64)
				if err != nil || value == 0 {
					continue
				}
				metric := ""
				if colIdx < len(headers) {
					metric = guessMetric(headers[colIdx])
				}
				observations = append(observations, model.Observation{
					Value:      value,
					SourceFile: path,
					Locator:    fmt.Sprintf("table%d.row%d.col%d", tableIdx, rowIdx, colIdx),
					Model:      modelName,
					Dataset:    dataset,
					Metric:     metric,
				})
			}
		}
	}

	return observations, nil
}

// findAll returns all descendant element nodes with the given tag name
func findAll(n *html.Node, tag string) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			results = append(results, node)
			if tag == "table" {
				return // No nested tables
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return results
}

// findCells returns the td/th children of a table row
func findCells(row *html.Node) []*html.Node {
	var cells []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && (node.Data == "td" || node.Data == "th") {
			cells = append(cells, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(row)
	return cells
}

// nodeText extracts the concatenated text content of a node
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if text := nodeText(c); text != "" {
			if buf.Len() > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(text)
		}
	}
	return buf.String()
}
