package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lesson-ledger-api/internal/dto"
	"github.com/noah-isme/lesson-ledger-api/internal/models"
	appErrors "github.com/noah-isme/lesson-ledger-api/pkg/errors"
	"github.com/noah-isme/lesson-ledger-api/pkg/export"
)

type summarySource interface {
	Summary(ctx context.Context, actor models.Actor, criteria models.SearchCriteria) (*models.ReportResult, error)
}

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
}

// ExportService renders lesson summaries as downloadable documents.
type ExportService struct {
	summaries summarySource
	csv       tableRenderer
	pdf       tableRenderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(summaries summarySource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		summaries: summaries,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
		now:       time.Now,
	}
}

// ExportSummary computes the summary for criteria and renders it in format.
func (s *ExportService) ExportSummary(ctx context.Context, actor models.Actor, criteria models.SearchCriteria, format dto.ExportFormat) (*dto.SummaryExport, error) {
	format = dto.ExportFormat(strings.ToLower(strings.TrimSpace(string(format))))
	if format == "" {
		format = dto.ExportFormatCSV
	}

	var (
		renderer    tableRenderer
		contentType string
	)
	switch format {
	case dto.ExportFormatCSV:
		renderer, contentType = s.csv, "text/csv"
	case dto.ExportFormatPDF:
		renderer, contentType = s.pdf, "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	report, err := s.summaries.Summary(ctx, actor, criteria)
	if err != nil {
		return nil, err
	}

	body, err := renderer.Render(SummaryTable(report, criteria))
	if err != nil {
		s.logger.Error("summary export failed", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render summary")
	}

	return &dto.SummaryExport{
		Filename:    fmt.Sprintf("lesson-summary-%s.%s", s.now().UTC().Format("20060102-150405"), format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

// SummaryTable lays a report out with one row per category, sorted by name,
// and a totals footer.
func SummaryTable(report *models.ReportResult, criteria models.SearchCriteria) export.Table {
	table := export.Table{
		Title:   "Lesson Summary",
		Headers: []string{"Category", "Hours", "Students"},
		Rows:    [][]string{},
	}
	if filters := describeCriteria(criteria); filters != "" {
		table.Subtitle = filters
	}
	if report == nil {
		report = &models.ReportResult{}
	}

	names := make([]string, 0, len(report.Hours))
	for name := range report.Hours {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		table.Rows = append(table.Rows, []string{name, formatHours(report.Hours[name]), strconv.Itoa(report.Students[name])})
	}
	table.Footer = []string{"Total", formatHours(report.TotalHours), strconv.Itoa(report.TotalStudents)}
	return table
}

func describeCriteria(c models.SearchCriteria) string {
	var parts []string
	add := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			parts = append(parts, label+": "+v)
		}
	}
	add("teacher", firstNonEmpty(c.TeacherID, c.TeacherEmail))
	add("student", firstNonEmpty(c.StudentID, strings.TrimSpace(c.StudentFirst+" "+c.StudentLast)))
	add("start", c.StartDate)
	add("end", c.EndDate)
	return strings.Join(parts, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}
