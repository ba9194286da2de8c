package sheet

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"deckgen/internal/model"
)

type wbSheet struct {
	name string
	rows [][]string
}

// makeWorkbook builds a minimal xlsx in memory using inline-string cells.
func makeWorkbook(t *testing.T, sheets ...wbSheet) []byte {
	t.Helper()

	var wb, rels strings.Builder
	wb.WriteString(`<?xml version="1.0"?>`)
	wb.WriteString(`<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets>`)
	rels.WriteString(`<?xml version="1.0"?>`)
	rels.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i, sh := range sheets {
		fmt.Fprintf(&wb, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`, sh.name, i+1, i+1)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet%d.xml"/>`, i+1, i+1)
	}
	wb.WriteString(`</sheets></workbook>`)
	rels.WriteString(`</Relationships>`)

	files := map[string]string{
		"xl/workbook.xml":            wb.String(),
		"xl/_rels/workbook.xml.rels": rels.String(),
	}
	for i, sh := range sheets {
		var ws strings.Builder
		ws.WriteString(`<?xml version="1.0"?>`)
		ws.WriteString(`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`)
		for r, row := range sh.rows {
			fmt.Fprintf(&ws, `<row r="%d">`, r+1)
			for c, cell := range row {
				if cell == "" {
					continue
				}
				fmt.Fprintf(&ws, `<c r="%s%d" t="inlineStr"><is><t>%s</t></is></c>`,
					string(rune('A'+c)), r+1, cell)
			}
			ws.WriteString(`</row>`)
		}
		ws.WriteString(`</sheetData></worksheet>`)
		files[fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)] = ws.String()
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(content))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestParseXLSXSingleSheetDomainColumn(t *testing.T) {
	data := makeWorkbook(t, wbSheet{
		name: "Requirements",
		rows: [][]string{
			{"Domain", "Requirement", "Status"},
			{"Endpoint", "Process monitoring", "Now"},
			{"Endpoint", "Registry auditing", "Partial"},
			{"Network", "DNS telemetry", "Roadmap"},
		},
	})
	domains, rep, err := ParseXLSX(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(domains) != 2 {
		t.Fatalf("domains = %d, want 2", len(domains))
	}
	if domains[0].Name != "Endpoint" || domains[1].Name != "Network" {
		t.Errorf("names: %q, %q", domains[0].Name, domains[1].Name)
	}
	if rep.RequirementsTotal != 3 || rep.RowsSkipped != 0 {
		t.Errorf("report: %+v", rep)
	}
}

func TestParseXLSXMultiSheet(t *testing.T) {
	data := makeWorkbook(t,
		wbSheet{name: "Summary", rows: [][]string{{"This tab is prose"}}},
		wbSheet{name: "Endpoint", rows: [][]string{
			{"Requirement", "Status"},
			{"Process monitoring", "Now"},
			{"Registry auditing", "Partial"},
		}},
		wbSheet{name: "Network", rows: [][]string{
			{"Requirement", "Status"},
			{"DNS telemetry", "Roadmap"},
		}},
	)
	domains, rep, err := ParseXLSX(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(domains) != 2 {
		t.Fatalf("domains = %d, want 2 (summary tab skipped)", len(domains))
	}
	if domains[0].Name != "Domain 1 of 2 · Endpoint" {
		t.Errorf("name = %q", domains[0].Name)
	}
	if domains[1].Name != "Domain 2 of 2 · Network" {
		t.Errorf("name = %q", domains[1].Name)
	}
	if rep.DomainsFound != 2 || rep.RequirementsTotal != 3 {
		t.Errorf("report: %+v", rep)
	}
}

func TestParseXLSXNoRequirements(t *testing.T) {
	data := makeWorkbook(t, wbSheet{name: "Notes", rows: [][]string{{"nothing", "here"}}})
	_, _, err := ParseXLSX(data)
	if !errors.Is(err, model.ErrMalformedRow) {
		t.Fatalf("want ErrMalformedRow, got %v", err)
	}
}

func TestParseXLSXNotAZip(t *testing.T) {
	if _, _, err := ParseXLSX([]byte("plain text")); err == nil {
		t.Fatal("want error for non-zip input")
	}
}

func TestCellValueSharedString(t *testing.T) {
	hello := "hello"
	sst := xlsxSST{Items: []xlsxRichText{{T: &hello}, {R: []struct {
		T string `xml:"t"`
	}{{T: "ri"}, {T: "ch"}}}}}

	if got := cellValue(xlsxCell{Type: "s", V: "0"}, sst); got != "hello" {
		t.Errorf("shared string = %q", got)
	}
	if got := cellValue(xlsxCell{Type: "s", V: "1"}, sst); got != "rich" {
		t.Errorf("rich shared string = %q", got)
	}
	if got := cellValue(xlsxCell{Type: "s", V: "9"}, sst); got != "" {
		t.Errorf("out-of-range shared string = %q", got)
	}
	if got := cellValue(xlsxCell{V: "42"}, sst); got != "42" {
		t.Errorf("numeric cell = %q", got)
	}
}
