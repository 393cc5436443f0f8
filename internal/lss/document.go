// Package lss reads LiveSplit splits files and aggregates their statistics.
package lss

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	byteOrderMark  = "\ufeff"
	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`
	runTagPrefix   = "<Run version="
	fileExtension  = ".lss"

	// AttemptTimeLayout is the layout of the started/ended attempt attributes.
	AttemptTimeLayout = "01/02/2006 15:04:05"
	// DefaultSplitName labels the personal best comparison.
	DefaultSplitName = "Personal Best"
)

// Document is the decoded <Run> element.
type Document struct {
	XMLName        xml.Name  `xml:"Run"`
	Version        string    `xml:"version,attr"`
	GameName       string    `xml:"GameName"`
	CategoryName   string    `xml:"CategoryName"`
	LayoutPath     string    `xml:"LayoutPath"`
	Offset         string    `xml:"Offset"`
	AttemptHistory []Attempt `xml:"AttemptHistory>Attempt"`
	Segments       []Segment `xml:"Segments>Segment"`

	attemptIndex map[int]int
}

// TimeElement holds the RealTime/GameTime children shared by several elements.
type TimeElement struct {
	RealTime *string `xml:"RealTime"`
	GameTime *string `xml:"GameTime"`
}

// Attempt is an <AttemptHistory><Attempt> element.
type Attempt struct {
	ID      string `xml:"id,attr"`
	Started string `xml:"started,attr"`
	Ended   string `xml:"ended,attr"`
	TimeElement
}

// SplitTime is a <SplitTimes><SplitTime name="..."> element.
type SplitTime struct {
	Name string `xml:"name,attr"`
	TimeElement
}

// HistoryTime is a <SegmentHistory><Time id="..."> element.
type HistoryTime struct {
	ID string `xml:"id,attr"`
	TimeElement
}

// Segment is a <Segments><Segment> element.
type Segment struct {
	Name            string        `xml:"Name"`
	SplitTimes      []SplitTime   `xml:"SplitTimes>SplitTime"`
	BestSegmentTime *TimeElement  `xml:"BestSegmentTime"`
	SegmentHistory  []HistoryTime `xml:"SegmentHistory>Time"`
}

// CheckPath rejects files without the .lss extension.
func CheckPath(path string) error {
	if !strings.EqualFold(filepath.Ext(path), fileExtension) {
		return &FormatError{Path: path, Reason: "file must be of type .lss"}
	}
	return nil
}

// CheckHeader validates the first two lines: the XML declaration preceded by a
// byte order mark, then the opening <Run version=...> tag.
func CheckHeader(data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	lines := make([]string, 0, 2)
	for len(lines) < 2 && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) == 0 || !strings.HasPrefix(lines[0], byteOrderMark+xmlDeclaration) {
		return &FormatError{Reason: "invalid XML version header"}
	}
	if len(lines) < 2 || !strings.HasPrefix(strings.TrimSpace(lines[1]), runTagPrefix) {
		return &FormatError{Reason: "missing <Run> tag"}
	}
	return nil
}

// Decode parses a splits document. The byte order mark is optional here.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	data = bytes.TrimPrefix(data, []byte(byteOrderMark))
	var doc Document
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	doc.buildIndex()
	return &doc, nil
}

func (d *Document) buildIndex() {
	d.attemptIndex = make(map[int]int, len(d.AttemptHistory))
	for i, a := range d.AttemptHistory {
		id, err := strconv.Atoi(strings.TrimSpace(a.ID))
		if err != nil {
			continue
		}
		if _, dup := d.attemptIndex[id]; !dup {
			d.attemptIndex[id] = i
		}
	}
}

// AttemptStartedAt returns the start timestamp of the attempt with the given id.
func (d *Document) AttemptStartedAt(id int) (time.Time, bool) {
	if d.attemptIndex == nil {
		d.buildIndex()
	}
	i, ok := d.attemptIndex[id]
	if !ok {
		return time.Time{}, false
	}
	return parseAttemptTime(d.AttemptHistory[i].Started)
}

func parseAttemptTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(AttemptTimeLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
