package sheets

import (
	"errors"
	"strings"
)

// TemplateSpreadsheetID is the shared read-only template. Users must
// duplicate it into their own Drive before linking, so linking the
// template itself is rejected.
const TemplateSpreadsheetID = "13fT6U82o1VVnyBU_josXb-FDnTnFEcjo_VdJkFtvHxw"

var (
	// ErrMalformedLink means the pasted text is not a full spreadsheet URL.
	ErrMalformedLink = errors.New("must paste the entire URL of the spreadsheet")

	// ErrTemplateLink means the user pasted the template spreadsheet
	// instead of their own copy.
	ErrTemplateLink = errors.New("must duplicate the spreadsheet")
)

// ExtractSpreadsheetID pulls the spreadsheet id out of a pasted Google
// Sheets URL. The id is the sixth slash-separated segment, as in
// https://docs.google.com/spreadsheets/d/<id>/edit.
func ExtractSpreadsheetID(link string) (string, error) {
	parts := strings.Split(strings.TrimSpace(link), "/")
	if len(parts) < 6 || parts[5] == "" {
		return "", ErrMalformedLink
	}
	id := parts[5]
	if id == TemplateSpreadsheetID {
		return "", ErrTemplateLink
	}
	return id, nil
}
