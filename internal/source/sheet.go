package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Column headers as the Google Form writes them into the linked sheet.
const (
	colTimestamp    = "Timestamp"
	colMemberName   = "اسمك"
	colReadingDate  = "تاريخ القراءة"
	colCommonBook   = "مدة قراءة الكتاب المشترك"
	colOtherBook    = "مدة قراءة كتاب آخر (إن وجد)"
	colQuotes       = "ما هي الاقتباسات التي أرسلتها اليوم؟ (اختر كل ما ينطبق)"
	colAchievements = "إنجازات الكتب والنقاش"
)

// SheetSource reads submissions from the Google Sheet the registration form
// is linked to, authenticated with a service account.
type SheetSource struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

func NewSheetSource(ctx context.Context, credentialsFile, spreadsheetID, sheetName string) (*SheetSource, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetSource{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func (s *SheetSource) Fetch(ctx context.Context) ([]SubmissionRow, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %q: %w", s.sheetName, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	// First row is the header; map column titles to indices so reordering
	// questions in the form doesn't break ingestion.
	index := make(map[string]int)
	for i, cell := range resp.Values[0] {
		index[strings.TrimSpace(fmt.Sprint(cell))] = i
	}

	cell := func(row []interface{}, title string) string {
		i, ok := index[title]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(row[i]))
	}

	rows := make([]SubmissionRow, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		rows = append(rows, SubmissionRow{
			Timestamp:    cell(raw, colTimestamp),
			MemberName:   cell(raw, colMemberName),
			ReadingDate:  cell(raw, colReadingDate),
			CommonBook:   cell(raw, colCommonBook),
			OtherBook:    cell(raw, colOtherBook),
			Quotes:       cell(raw, colQuotes),
			Achievements: cell(raw, colAchievements),
		})
	}
	return rows, nil
}
