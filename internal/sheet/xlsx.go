package sheet

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"

	"deckgen/internal/model"
)

// XLSX is OPC like the decks we write: a zip of XML parts. Reading it needs
// the workbook sheet list, the workbook relationships, the shared-string
// table and each worksheet's cell grid.

type xlsxWorkbook struct {
	Sheets struct {
		Sheet []xlsxSheet `xml:"sheet"`
	} `xml:"sheets"`
}

type xlsxSheet struct {
	Name string `xml:"name,attr"`
	RID  string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type xlsxRels struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xlsxSST struct {
	Items []xlsxRichText `xml:"si"`
}

type xlsxRichText struct {
	T *string `xml:"t"`
	R []struct {
		T string `xml:"t"`
	} `xml:"r"`
}

func (rt xlsxRichText) text() string {
	if rt.T != nil {
		return *rt.T
	}
	var b strings.Builder
	for _, r := range rt.R {
		b.WriteString(r.T)
	}
	return b.String()
}

type xlsxWorksheet struct {
	Rows []xlsxRow `xml:"sheetData>row"`
}

type xlsxRow struct {
	Cells []xlsxCell `xml:"c"`
}

type xlsxCell struct {
	Ref  string        `xml:"r,attr"`
	Type string        `xml:"t,attr"`
	V    string        `xml:"v"`
	Is   *xlsxRichText `xml:"is"`
}

// metadataSheets are workbook tabs that never hold requirement rows.
var metadataSheets = map[string]bool{
	"summary": true, "overview": true, "metadata": true,
	"readme": true, "instructions": true, "cover": true,
}

// ParseXLSXFile reads a workbook from disk.
func ParseXLSXFile(path string) ([]model.Domain, Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Report{}, fmt.Errorf("workbook %s: %w", path, err)
		}
		return nil, Report{}, fmt.Errorf("read workbook: %w", err)
	}
	return ParseXLSX(data)
}

// ParseXLSX parses workbook bytes. A single sheet with a domain column groups
// by adjacency; otherwise each non-metadata sheet becomes one domain named
// "Domain i of N · Sheet".
func ParseXLSX(data []byte) ([]model.Domain, Report, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, Report{}, fmt.Errorf("open workbook: %w", err)
	}
	parts := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, Report{}, fmt.Errorf("open workbook part %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, Report{}, fmt.Errorf("read workbook part %s: %w", f.Name, err)
		}
		parts[f.Name] = content
	}

	var wb xlsxWorkbook
	if err := xml.Unmarshal(parts["xl/workbook.xml"], &wb); err != nil {
		return nil, Report{}, fmt.Errorf("parse workbook: %w", err)
	}
	var rels xlsxRels
	if err := xml.Unmarshal(parts["xl/_rels/workbook.xml.rels"], &rels); err != nil {
		return nil, Report{}, fmt.Errorf("parse workbook rels: %w", err)
	}
	relTargets := map[string]string{}
	for _, r := range rels.Rels {
		relTargets[r.ID] = r.Target
	}

	var sst xlsxSST
	if ss, ok := parts["xl/sharedStrings.xml"]; ok {
		if err := xml.Unmarshal(ss, &sst); err != nil {
			return nil, Report{}, fmt.Errorf("parse shared strings: %w", err)
		}
	}

	type sheetGrid struct {
		name string
		rows [][]string
	}
	var grids []sheetGrid
	for _, sh := range wb.Sheets.Sheet {
		if metadataSheets[strings.ToLower(strings.TrimSpace(sh.Name))] {
			continue
		}
		target, ok := relTargets[sh.RID]
		if !ok {
			continue
		}
		partName := path.Clean("xl/" + strings.TrimPrefix(target, "/"))
		wsData, ok := parts[partName]
		if !ok {
			continue
		}
		rows, err := sheetRows(wsData, sst)
		if err != nil {
			return nil, Report{}, fmt.Errorf("parse sheet %q: %w", sh.Name, err)
		}
		grids = append(grids, sheetGrid{name: sh.Name, rows: rows})
	}

	// Parse every candidate sheet; keep the ones that yield requirements.
	type sheetResult struct {
		name      string
		parsed    []parsedRow
		hasDomain bool
		rows      [][]string
		skipped   int
	}
	var results []sheetResult
	for _, g := range grids {
		headerIdx, cols := findHeader(g.rows)
		if headerIdx < 0 {
			continue
		}
		var rep Report
		parsed := parseRows(g.rows, headerIdx, cols, &rep)
		if len(parsed) == 0 && rep.RowsSkipped == 0 {
			continue
		}
		_, hasDomain := cols["domain"]
		results = append(results, sheetResult{
			name: g.name, parsed: parsed, hasDomain: hasDomain, rows: g.rows, skipped: rep.RowsSkipped,
		})
	}
	if len(results) == 0 {
		return nil, Report{}, fmt.Errorf("%w: no requirement rows in workbook", model.ErrMalformedRow)
	}

	// Single sheet with a domain column: adjacency grouping.
	if len(results) == 1 && results[0].hasDomain {
		return DomainsFromRows(results[0].rows)
	}

	// Multi-sheet mode: one domain per sheet.
	var rep Report
	domains := make([]model.Domain, 0, len(results))
	for i, res := range results {
		rep.RowsSkipped += res.skipped
		dom := model.Domain{
			Name:        fmt.Sprintf("Domain %d of %d · %s", i+1, len(results), res.name),
			Description: fmt.Sprintf("%d requirements", len(res.parsed)),
		}
		for _, pr := range res.parsed {
			dom.Requirements = append(dom.Requirements, pr.req)
		}
		rep.RequirementsTotal += len(dom.Requirements)
		domains = append(domains, dom)
	}
	rep.DomainsFound = len(domains)
	return domains, rep, nil
}

// sheetRows flattens a worksheet into a dense string grid.
func sheetRows(wsData []byte, sst xlsxSST) ([][]string, error) {
	var ws xlsxWorksheet
	if err := xml.Unmarshal(wsData, &ws); err != nil {
		return nil, err
	}
	var rows [][]string
	for _, r := range ws.Rows {
		var row []string
		for _, c := range r.Cells {
			idx := columnIndex(c.Ref)
			for len(row) <= idx {
				row = append(row, "")
			}
			row[idx] = cellValue(c, sst)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cellValue(c xlsxCell, sst xlsxSST) string {
	switch c.Type {
	case "s":
		i, err := strconv.Atoi(strings.TrimSpace(c.V))
		if err != nil || i < 0 || i >= len(sst.Items) {
			return ""
		}
		return sst.Items[i].text()
	case "inlineStr":
		if c.Is != nil {
			return c.Is.text()
		}
		return ""
	default:
		return c.V
	}
}

// columnIndex converts the letter prefix of a cell reference ("C7") to a
// zero-based column index.
func columnIndex(ref string) int {
	idx := 0
	for _, r := range ref {
		if r < 'A' || r > 'Z' {
			break
		}
		idx = idx*26 + int(r-'A') + 1
	}
	if idx == 0 {
		return 0
	}
	return idx - 1
}
