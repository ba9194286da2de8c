// Package sheet converts tabular requirement data (CSV or XLSX) into the
// canonical Domain/Requirement structure. Bad rows are skipped and counted,
// never fatal: one malformed row must not block parsing a large sheet.
package sheet

import (
	"fmt"
	"strings"

	"deckgen/internal/model"
)

// Report summarizes one parse for display by the calling layer.
type Report struct {
	DomainsFound      int `json:"domains_found"`
	RequirementsTotal int `json:"requirements_total"`
	RowsSkipped       int `json:"rows_skipped"`
}

// Column header aliases, matched case-insensitively. Extra columns are
// ignored.
var headerAliases = map[string][]string{
	"requirement": {"requirement", "req", "requirement name", "name", "capability"},
	"description": {"description", "desc", "detail", "details", "notes", "note"},
	"status":      {"status", "coverage", "availability", "state", "response"},
	"signal":      {"signal", "signal type", "telemetry", "data type", "type"},
	"domain":      {"domain", "domain name", "category", "group", "area"},
}

func matchColumn(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	for key, aliases := range headerAliases {
		for _, a := range aliases {
			if h == a {
				return key
			}
		}
	}
	return ""
}

type colMap map[string]int

// findHeader locates the header row: the first row with at least two
// recognized columns. Returns -1 when no row qualifies.
func findHeader(rows [][]string) (int, colMap) {
	for i, row := range rows {
		cols := colMap{}
		for c, cell := range row {
			if key := matchColumn(cell); key != "" {
				if _, taken := cols[key]; !taken {
					cols[key] = c
				}
			}
		}
		if len(cols) >= 2 {
			return i, cols
		}
	}
	return -1, nil
}

type parsedRow struct {
	req    model.Requirement
	domain string
}

func cellAt(row []string, idx int, ok bool) string {
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRows reads requirement rows below the header. Rows with content but no
// requirement name, and rows whose status does not normalize, are skipped and
// counted in the report.
func parseRows(rows [][]string, headerIdx int, cols colMap, rep *Report) []parsedRow {
	reqCol, hasReq := cols["requirement"]
	descCol, hasDesc := cols["description"]
	statusCol, hasStatus := cols["status"]
	signalCol, hasSignal := cols["signal"]
	domCol, hasDom := cols["domain"]

	var out []parsedRow
	lastDomain := ""
	for _, row := range rows[headerIdx+1:] {
		if isBlank(row) {
			continue
		}
		name := cellAt(row, reqCol, hasReq)
		if name == "" {
			rep.RowsSkipped++
			continue
		}
		status := cellAt(row, statusCol, hasStatus)
		req, err := model.NewRequirement(name, cellAt(row, descCol, hasDesc), status, cellAt(row, signalCol, hasSignal))
		if err != nil {
			rep.RowsSkipped++
			continue
		}
		dom := cellAt(row, domCol, hasDom)
		if dom == "" {
			// Merged-cell convention: a blank domain cell continues the
			// previous row's domain.
			dom = lastDomain
		}
		lastDomain = dom
		out = append(out, parsedRow{req: req, domain: dom})
	}
	return out
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// DomainsFromRows groups parsed rows into Domains by adjacency: a new Domain
// starts whenever the domain-column value differs from the previous row.
// Non-contiguous rows sharing a name therefore produce separate Domains.
func DomainsFromRows(rows [][]string) ([]model.Domain, Report, error) {
	var rep Report
	headerIdx, cols := findHeader(rows)
	if headerIdx < 0 {
		return nil, rep, fmt.Errorf("%w: no recognizable header row", model.ErrMalformedRow)
	}

	parsed := parseRows(rows, headerIdx, cols, &rep)

	var domains []model.Domain
	current := -1
	currentName := ""
	for _, pr := range parsed {
		name := pr.domain
		if name == "" {
			name = "Uncategorized"
		}
		if current < 0 || name != currentName {
			domains = append(domains, model.Domain{Name: name})
			current = len(domains) - 1
			currentName = name
		}
		domains[current].Requirements = append(domains[current].Requirements, pr.req)
	}

	for i := range domains {
		domains[i].Description = fmt.Sprintf("%d requirements", len(domains[i].Requirements))
		rep.RequirementsTotal += len(domains[i].Requirements)
	}
	rep.DomainsFound = len(domains)
	return domains, rep, nil
}
