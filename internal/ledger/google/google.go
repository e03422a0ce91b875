package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"nestegg/internal/core"
	ports "nestegg/internal/ledger"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client reads budgets, limits and transactions from a Google Spreadsheet.
// Layout: one sheet per concern, first row is a header, columns as parsed in
// google_parse.go.
type Client struct {
	svc               *gsheet.Service
	spreadsheetID     string
	budgetsSheet      string
	limitsSheet       string
	transactionsSheet string
}

// Ensure interface conformance
var _ ports.Reader = (*Client)(nil)

// Config carries the spreadsheet coordinates. Credentials are resolved from
// the environment, see newSheetsService.
type Config struct {
	SpreadsheetID     string
	BudgetsSheet      string
	LimitsSheet       string
	TransactionsSheet string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	c := &Client{
		svc:               svc,
		spreadsheetID:     cfg.SpreadsheetID,
		budgetsSheet:      defaultName(cfg.BudgetsSheet, "Budgets"),
		limitsSheet:       defaultName(cfg.LimitsSheet, "Limits"),
		transactionsSheet: defaultName(cfg.TransactionsSheet, "Transactions"),
	}
	return c, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
// Uses GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := c.readRows(ctx, c.budgetsSheet, "A:B")
	if err != nil {
		return nil, err
	}
	budgets, err := parseBudgets(rows)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Budgets loaded from sheet", "sheet", c.budgetsSheet, "count", len(budgets))
	return budgets, nil
}

func (c *Client) ListLimits(ctx context.Context) ([]core.BudgetLimit, error) {
	rows, err := c.readRows(ctx, c.limitsSheet, "A:E")
	if err != nil {
		return nil, err
	}
	limits, err := parseLimits(rows)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Budget limits loaded from sheet", "sheet", c.limitsSheet, "count", len(limits))
	return limits, nil
}

func (c *Client) ListWithdrawals(ctx context.Context, from, to core.Date) ([]core.Transaction, error) {
	rows, err := c.readRows(ctx, c.transactionsSheet, "A:D")
	if err != nil {
		return nil, err
	}
	txns, err := parseTransactions(rows, from, to)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Withdrawals loaded from sheet",
		"sheet", c.transactionsSheet, "count", len(txns), "from", from, "to", to)
	return txns, nil
}

func (c *Client) readRows(ctx context.Context, sheetName, cols string) ([][]any, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!%s", sheetName, cols)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

func defaultName(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return strings.TrimSpace(name)
}
