package verdi

import (
	"regexp"
	"strings"
)

// Table is the structured form of tabular verdi output.
type Table struct {
	Headers []string
	Rows    [][]string
	Footer  string
}

var (
	separatorRe = regexp.MustCompile(`^[\s\-]+$`)
	columnRe    = regexp.MustCompile(`\s{2,}`)
	reportRe    = regexp.MustCompile(`^(Report|Info|Warning|Error|Debug|Critical):`)
)

// footerPrefixes mark the start of the trailing section after table rows.
var footerPrefixes = []string{
	"Total", "Report:", "Info:", "Warning:", "Error:", "Success:", "Critical:", "Debug:",
}

// ParseTable parses verdi's plain-text tables: a header line, a dashed
// separator, rows with columns split on runs of two or more spaces, and an
// optional footer ("Total results: N"). Text without a separator line is
// returned whole in Footer.
func ParseTable(text string) Table {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return Table{}
	}

	sep := -1
	for i, line := range lines {
		if line != "" && separatorRe.MatchString(line) {
			sep = i
			break
		}
	}
	if sep == -1 {
		return Table{Footer: strings.TrimSpace(text)}
	}

	var headers []string
	if sep > 0 {
		headers = splitColumns(lines[sep-1])
	}

	var rows [][]string
	var footerLines []string
	inFooter := false

	for _, line := range lines[sep+1:] {
		stripped := strings.TrimSpace(line)

		if !inFooter && (stripped == "" || hasFooterPrefix(stripped)) {
			inFooter = true
		}
		if inFooter {
			if stripped != "" && !reportRe.MatchString(stripped) {
				footerLines = append(footerLines, stripped)
			}
			continue
		}
		if cells := splitColumns(line); len(cells) > 0 {
			rows = append(rows, cells)
		}
	}

	return Table{
		Headers: headers,
		Rows:    rows,
		Footer:  strings.Join(footerLines, "\n"),
	}
}

// ParseBulletList parses "* item" listings (computer list, plugin list)
// into a single-column table with the given header.
func ParseBulletList(text, header string) Table {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" || reportRe.MatchString(stripped) || strings.HasPrefix(stripped, "Success:") {
			continue
		}
		stripped = strings.TrimSpace(strings.TrimPrefix(stripped, "* "))
		if stripped != "" {
			rows = append(rows, []string{stripped})
		}
	}
	return Table{Headers: []string{header}, Rows: rows}
}

func splitColumns(line string) []string {
	var cells []string
	for _, c := range columnRe.Split(strings.TrimSpace(line), -1) {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

func hasFooterPrefix(s string) bool {
	for _, p := range footerPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
