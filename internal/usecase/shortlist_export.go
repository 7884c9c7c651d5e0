package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"go-match-backend/internal/domain"
	"go-match-backend/internal/scoring"

	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

var shortlistHeaders = []string{
	"RANK", "CANDIDATE ID", "OVERALL (%)", "EXPERIENCE (%)", "SKILLS (%)",
	"PROJECTS (%)", "PROFILE FIT (%)", "MATCHED SKILLS", "MISSING SKILLS", "EXPLANATION",
}

// ExportShortlist renders the ranked applicants of a job as a spreadsheet and
// returns the file content together with a download filename.
func (u *matchUsecase) ExportShortlist(ctx context.Context, jobID int64, topN int, format string) ([]byte, string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatXLSX
	}
	if format != FormatXLSX && format != FormatCSV {
		return nil, "", fmt.Errorf("%w: unsupported export format %q", scoring.ErrInvalidArgument, format)
	}

	ranked, err := u.RankApplicants(ctx, jobID, topN)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("shortlist_job_%d_%s.%s", jobID, time.Now().Format("20060102_150405"), format)
	if format == FormatCSV {
		data, err := exportShortlistCSV(ranked)
		return data, filename, err
	}
	data, err := exportShortlistExcel(ranked)
	return data, filename, err
}

func shortlistRow(r domain.MatchResult) []interface{} {
	return []interface{}{
		r.Rank,
		r.CandidateID,
		pct(r.Overall),
		pct(r.Breakdown.Experience),
		pct(r.Breakdown.Skills),
		pct(r.Breakdown.Projects),
		pct(r.Breakdown.Semantic),
		strings.Join(r.MatchedSkills, ", "),
		strings.Join(r.MissingSkills, ", "),
		r.Explanation,
	}
}

func pct(v float64) float64 {
	return float64(int(v*1000+0.5)) / 10
}

// exportShortlistExcel writes the ranking to a "Shortlist" sheet and, when
// any applicant could not be scored, a second "Skipped" sheet.
func exportShortlistExcel(ranked *domain.RankedApplicants) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Shortlist"
	f.SetSheetName("Sheet1", sheetName)

	for i, h := range shortlistHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	// Dark blue header with white text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(shortlistHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, r := range ranked.Results {
		for colIdx, value := range shortlistRow(r) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range shortlistHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		width := 18.0
		if i == len(shortlistHeaders)-1 {
			width = 80
		}
		f.SetColWidth(sheetName, colName, colName, width)
	}

	if len(ranked.Skipped) > 0 {
		skippedSheet := "Skipped"
		if _, err := f.NewSheet(skippedSheet); err != nil {
			return nil, fmt.Errorf("failed to add skipped sheet: %w", err)
		}
		f.SetCellValue(skippedSheet, "A1", "CANDIDATE ID")
		f.SetCellValue(skippedSheet, "B1", "REASON")
		f.SetCellStyle(skippedSheet, "A1", "B1", headerStyle)
		for i, s := range ranked.Skipped {
			f.SetCellValue(skippedSheet, fmt.Sprintf("A%d", i+2), s.CandidateID)
			f.SetCellValue(skippedSheet, fmt.Sprintf("B%d", i+2), s.Reason)
		}
		f.SetColWidth(skippedSheet, "A", "A", 40)
		f.SetColWidth(skippedSheet, "B", "B", 80)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportShortlistCSV(ranked *domain.RankedApplicants) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(shortlistHeaders); err != nil {
		return nil, err
	}
	for _, r := range ranked.Results {
		row := shortlistRow(r)
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return buf.Bytes(), nil
}
