package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"sheetlog/pkg/logging"
	pkgoauth "sheetlog/pkg/oauth"
)

// Failures of the spreadsheet API itself, mapped independently of auth
// failures. A caller that reaches this package already holds a live
// credential from the supplier.
var (
	// ErrSpreadsheetNotFound means the linked spreadsheet id does not
	// resolve (deleted, or never shared with this account).
	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")

	// ErrQuotaExceeded means the API rejected the call for rate or quota
	// reasons.
	ErrQuotaExceeded = errors.New("spreadsheet API quota exceeded")

	// ErrInvalidRange means the requested range or values were malformed.
	ErrInvalidRange = errors.New("invalid spreadsheet range")
)

// Service is the spreadsheet collaborator consumed by the handlers. The
// bearer credential comes in per call; the service holds no tokens.
type Service interface {
	// Values reads cell values for a range.
	Values(ctx context.Context, cred *pkgoauth.TokenBundle, spreadsheetID, readRange string) ([][]string, error)

	// Update writes cell values to a range with user-entered parsing.
	Update(ctx context.Context, cred *pkgoauth.TokenBundle, spreadsheetID, writeRange string, values [][]string) error

	// SheetTitles lists the spreadsheet's tab titles.
	SheetTitles(ctx context.Context, cred *pkgoauth.TokenBundle, spreadsheetID string) ([]string, error)
}

// GoogleService talks to the Google Sheets v4 API.
type GoogleService struct {
	// opts lets tests point the client at a fake endpoint.
	opts []option.ClientOption
}

// NewGoogleService creates the Sheets API collaborator.
func NewGoogleService(opts ...option.ClientOption) *GoogleService {
	return &GoogleService{opts: opts}
}

func (g *GoogleService) client(ctx context.Context, cred *pkgoauth.TokenBundle) (*sheetsv4.Service, error) {
	opts := append([]option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(cred.ToOAuth2Token())),
	}, g.opts...)
	svc, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheets client: %w", err)
	}
	return svc, nil
}

// Values reads cell values for a range.
func (g *GoogleService) Values(ctx context.Context, cred *pkgoauth.TokenBundle, spreadsheetID, readRange string) ([][]string, error) {
	svc, err := g.client(ctx, cred)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err, "read")
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// Update writes cell values to a range with user-entered parsing.
func (g *GoogleService) Update(ctx context.Context, cred *pkgoauth.TokenBundle, spreadsheetID, writeRange string, values [][]string) error {
	svc, err := g.client(ctx, cred)
	if err != nil {
		return err
	}

	body := &sheetsv4.ValueRange{Values: toInterfaceRows(values)}
	_, err = svc.Spreadsheets.Values.Update(spreadsheetID, writeRange, body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return classifyAPIError(err, "write")
	}
	logging.Debug("Sheets", "Wrote %d rows to %s", len(values), writeRange)
	return nil
}

// SheetTitles lists the spreadsheet's tab titles.
func (g *GoogleService) SheetTitles(ctx context.Context, cred *pkgoauth.TokenBundle, spreadsheetID string) ([]string, error) {
	svc, err := g.client(ctx, cred)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err, "metadata")
	}

	titles := make([]string, 0, len(resp.Sheets))
	for _, sheet := range resp.Sheets {
		if sheet.Properties != nil {
			titles = append(titles, sheet.Properties.Title)
		}
	}
	return titles, nil
}

func toInterfaceRows(values [][]string) [][]interface{} {
	rows := make([][]interface{}, 0, len(values))
	for _, row := range values {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		rows = append(rows, cells)
	}
	return rows
}

func classifyAPIError(err error, op string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s failed", ErrSpreadsheetNotFound, op)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s failed", ErrQuotaExceeded, op)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s failed: %s", ErrInvalidRange, op, apiErr.Message)
		}
	}
	return fmt.Errorf("spreadsheet %s failed: %w", op, err)
}
