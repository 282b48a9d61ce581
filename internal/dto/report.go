package dto

// ExportFormat enumerates supported summary export formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// SummaryExport is a rendered summary ready for download.
type SummaryExport struct {
	Filename    string
	ContentType string
	Body        []byte
}
