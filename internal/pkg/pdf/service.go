// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/your-org/warehouse-backend/internal/config"
	"github.com/your-org/warehouse-backend/internal/domain/wave"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateManifest renders a printable manifest for a wave: its header
// data and the full line-item list. Used by operators on the floor.
func (s *Service) GenerateManifest(w *wave.Wave, lines []wave.LineItemView) (*bytes.Buffer, error) {
	data := ManifestData{
		Wave:        w,
		Lines:       lines,
		KindLabel:   kindLabel(w.Kind),
		GeneratedAt: time.Now().Format("January 2, 2006 15:04"),
		PlannedDate: w.PlannedDate.Format("2006-01-02"),
		AppName:     s.config.App.Name,
	}
	if w.ActualDate != nil {
		data.ActualDate = w.ActualDate.Format("2006-01-02")
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func kindLabel(kind wave.Kind) string {
	if kind == wave.KindOutbound {
		return "OUTBOUND SHIPMENT"
	}
	return "INBOUND RECEIPT"
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data ManifestData) (string, error) {
	tmpl := template.Must(template.New("manifest").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).Parse(manifestTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// ManifestData represents the data passed to the manifest template
type ManifestData struct {
	Wave        *wave.Wave          `json:"wave"`
	Lines       []wave.LineItemView `json:"lines"`
	KindLabel   string              `json:"kind_label"`
	GeneratedAt string              `json:"generated_at"`
	PlannedDate string              `json:"planned_date"`
	ActualDate  string              `json:"actual_date"`
	AppName     string              `json:"app_name"`
}

// Manifest HTML template
const manifestTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Manifest {{.Wave.Number}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .manifest-title {
            font-size: 28px;
            font-weight: bold;
            color: #2563eb;
            margin-bottom: 10px;
        }
        .wave-details {
            margin-bottom: 30px;
        }
        .wave-details table {
            width: 100%;
        }
        .wave-details td {
            padding: 5px 0;
            vertical-align: top;
        }
        .wave-details .label {
            font-weight: bold;
            width: 150px;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 12px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .items-table .qty-col,
        .items-table .weight-col {
            text-align: right;
            width: 100px;
        }
        .totals {
            float: right;
            width: 300px;
        }
        .totals table {
            width: 100%;
            border-collapse: collapse;
        }
        .totals td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .totals .label {
            text-align: right;
            font-weight: bold;
        }
        .totals .amount {
            text-align: right;
            width: 100px;
        }
        .status-badge {
            display: inline-block;
            padding: 4px 8px;
            border-radius: 4px;
            font-size: 12px;
            font-weight: bold;
            text-transform: uppercase;
            background-color: #fef3c7;
            color: #92400e;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.AppName}}</h1>
            <p>{{.KindLabel}}</p>
        </div>
        <div style="text-align: right;">
            <div class="manifest-title">MANIFEST</div>
            <p><strong>Wave #:</strong> {{.Wave.Number}}</p>
            <p><strong>Generated:</strong> {{.GeneratedAt}}</p>
        </div>
    </div>

    <div class="wave-details">
        <table>
            <tr>
                <td class="label">Counterparty:</td>
                <td>{{.Wave.Counterparty}}</td>
                <td class="label" style="text-align: right;">Status:</td>
                <td style="text-align: right;">
                    <span class="status-badge">{{.Wave.Status}}</span>
                </td>
            </tr>
            <tr>
                <td class="label">Planned Date:</td>
                <td>{{.PlannedDate}}</td>
                <td class="label" style="text-align: right;">Actual Date:</td>
                <td style="text-align: right;">{{if .ActualDate}}{{.ActualDate}}{{else}}&mdash;{{end}}</td>
            </tr>
            {{if .Wave.Description}}
            <tr>
                <td class="label">Description:</td>
                <td colspan="3">{{.Wave.Description}}</td>
            </tr>
            {{end}}
        </table>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>#</th>
                <th>Part Number</th>
                <th>Description</th>
                <th class="weight-col">Weight (g)</th>
                <th class="qty-col">Qty</th>
            </tr>
        </thead>
        <tbody>
            {{range $i, $line := .Lines}}
            <tr>
                <td>{{inc $i}}</td>
                <td><strong>{{$line.ItemCode}}</strong></td>
                <td>{{$line.Description}}</td>
                <td class="weight-col">{{$line.WeightGrams}}</td>
                <td class="qty-col">{{$line.Quantity}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr>
                <td class="label">Line items:</td>
                <td class="amount">{{.Wave.TotalItems}}</td>
            </tr>
            <tr>
                <td class="label">Total quantity:</td>
                <td class="amount">{{.Wave.TotalQuantity}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Signature: ______________________ Date: ______________</p>
    </div>
</body>
</html>
`
