package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	catalogtypes "github.com/er-knight/leetcodedaily/pkg/catalog/types"
)

const defaultPageSize = 50

// SheetSource serves a problem list stored in a workbook as pages, for
// seeding the catalog offline. The first row is a header naming at least the
// ID, Title, URL, Acceptance and Difficulty columns, in any order.
type SheetSource struct {
	rows     [][]string
	cols     map[string]int
	pageSize int
	next     int
}

// OpenSheetSource reads sheet from r; an empty sheet name means the first sheet.
func OpenSheetSource(r io.Reader, sheet string, pageSize int) (*SheetSource, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range []string{"id", "title", "url", "acceptance", "difficulty"} {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("sheet %q: missing column %q", sheet, want)
		}
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &SheetSource{rows: rows[1:], cols: cols, pageSize: pageSize}, nil
}

func (s *SheetSource) NextPage(ctx context.Context) ([]catalogtypes.RawRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if s.next >= len(s.rows) {
		return nil, false, nil
	}
	end := min(s.next+s.pageSize, len(s.rows))
	page := make([]catalogtypes.RawRecord, 0, end-s.next)
	for _, row := range s.rows[s.next:end] {
		page = append(page, catalogtypes.RawRecord{
			ID:             s.cell(row, "id"),
			Title:          s.cell(row, "title"),
			URL:            s.cell(row, "url"),
			AcceptanceRate: s.cell(row, "acceptance"),
			Difficulty:     s.cell(row, "difficulty"),
		})
	}
	s.next = end
	return page, true, nil
}

// GetRows trims trailing empty cells, so short rows are normal.
func (s *SheetSource) cell(row []string, col string) string {
	i := s.cols[col]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
