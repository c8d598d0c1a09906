// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package borders

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Point is a pixel on the target raster.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Segment joins two points, by their 1-based index in Table.Points.
type Segment struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Table is the deduplicated point table and the segments over it.
type Table struct {
	Points   []Point   `json:"points"`
	Segments []Segment `json:"segments"`

	index map[Point]int
}

// Add records a segment, appending either end point the table has not
// seen yet.
func (t *Table) Add(start, end Point) {
	from := t.intern(start)
	to := t.intern(end)
	t.Segments = append(t.Segments, Segment{From: from, To: to})
}

func (t *Table) intern(point Point) int {
	if t.index == nil {
		t.index = make(map[Point]int)
	}
	if number, ok := t.index[point]; ok {
		return number
	}
	t.Points = append(t.Points, point)
	t.index[point] = len(t.Points)
	return len(t.Points)
}

// MaxY returns the largest Y of any point, or -1 for an empty table.
func (t *Table) MaxY() int {
	maxY := -1
	for _, point := range t.Points {
		maxY = max(maxY, point.Y)
	}
	return maxY
}

// WriteLua writes the table as two Lua assignments:
//
//	POINTS={{x, y}, ...}
//	LINES={{from, to}, ...}
func (t *Table) WriteLua(w io.Writer) error {
	var builder strings.Builder
	builder.WriteString("POINTS={")
	for i, point := range t.Points {
		if i > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(&builder, "{%d, %d}", point.X, point.Y)
	}
	builder.WriteString("}\nLINES={")
	for i, segment := range t.Segments {
		if i > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(&builder, "{%d, %d}", segment.From, segment.To)
	}
	builder.WriteString("}\n")
	_, err := io.WriteString(w, builder.String())
	return err
}

// Projector maps SVG user units onto a width×height raster. X is
// shifted one pixel right, matching the 1-based column addressing of
// the drawing code.
type Projector struct {
	ViewWidth, ViewHeight float64
	Width, Height         int
}

// Project converts v to a raster pixel, truncating toward zero.
func (p Projector) Project(v Vec) Point {
	return Point{
		X: int(v.X/p.ViewWidth*float64(p.Width)) + 1,
		Y: int(v.Y/p.ViewHeight*float64(p.Height)),
	}
}

// Parse reads an SVG document and converts the line segments of every
// path element, in document order, onto a width×height raster. The
// scale comes from the root viewBox; its origin is ignored.
func Parse(r io.Reader, width, height int) (*Table, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster size %dx%d must be positive", width, height)
	}
	decoder := xml.NewDecoder(r)
	var (
		projector *Projector
		table     = &Table{}
		paths     int
	)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing svg: %w", err)
		}
		element, ok := token.(xml.StartElement)
		if !ok || (element.Name.Space != svgNamespace && element.Name.Space != "") {
			continue
		}
		switch element.Name.Local {
		case "svg":
			if projector != nil {
				continue
			}
			viewBox, ok := attribute(element, "viewBox")
			if !ok {
				return nil, fmt.Errorf("svg root has no viewBox")
			}
			viewWidth, viewHeight, err := parseViewBox(viewBox)
			if err != nil {
				return nil, err
			}
			projector = &Projector{ViewWidth: viewWidth, ViewHeight: viewHeight, Width: width, Height: height}
		case "path":
			if projector == nil {
				return nil, fmt.Errorf("path element outside an svg root")
			}
			d, _ := attribute(element, "d")
			lines, err := Lines(d)
			if err != nil {
				return nil, fmt.Errorf("path %d: %w", paths, err)
			}
			for _, line := range lines {
				table.Add(projector.Project(line.Start), projector.Project(line.End))
			}
			paths++
		}
	}
	if projector == nil {
		return nil, fmt.Errorf("document has no svg element")
	}
	return table, nil
}

// ParseFile is Parse over the file at path.
func ParseFile(path string, width, height int) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening borders: %w", err)
	}
	defer file.Close()
	table, err := Parse(file, width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func attribute(element xml.StartElement, name string) (string, bool) {
	for _, attr := range element.Attr {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// parseViewBox returns the width and height of "min-x min-y width height".
func parseViewBox(value string) (float64, float64, error) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return 0, 0, fmt.Errorf("viewBox %q: want 4 numbers", value)
	}
	var numbers [4]float64
	for i, field := range fields {
		number, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("viewBox %q: %w", value, err)
		}
		numbers[i] = number
	}
	if numbers[2] <= 0 || numbers[3] <= 0 {
		return 0, 0, fmt.Errorf("viewBox %q: width and height must be positive", value)
	}
	return numbers[2], numbers[3], nil
}
