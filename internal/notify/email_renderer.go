package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// HTMLEmailRenderer renders notifications as HTML emails with a plain text fallback.
type HTMLEmailRenderer struct {
	tmpl *template.Template
}

// NewHTMLEmailRenderer creates a renderer with the default email template.
func NewHTMLEmailRenderer() *HTMLEmailRenderer {
	t := template.Must(template.New("email").Parse(emailHTMLTemplate))
	return &HTMLEmailRenderer{tmpl: t}
}

func (r *HTMLEmailRenderer) Render(data NotificationData) (*RenderedMessage, error) {
	subject := fmt.Sprintf("SEC 8-K Alert: %s - %s", data.Result.Company, data.Result.ProductName)

	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: subject,
		Text:    renderPlainText(data),
		HTML:    htmlBuf.String(),
	}, nil
}

// renderPlainText produces a readable plain text version for email clients that don't support HTML.
func renderPlainText(data NotificationData) string {
	res := data.Result
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s - %s\n", res.Company, res.ProductName))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	sb.WriteString(fmt.Sprintf("Filed: %s\n", res.FilingDate))
	sb.WriteString(fmt.Sprintf("CIK: %s\n", res.CIK))
	sb.WriteString(fmt.Sprintf("Accession: %s\n", res.AccessionNumber))
	if res.DocumentURL != "" {
		sb.WriteString(fmt.Sprintf("URL: %s\n", res.DocumentURL))
	}
	if res.Keyword != "" {
		sb.WriteString(fmt.Sprintf("Keyword: %s\n", res.Keyword))
	}
	sb.WriteString("\n")

	if res.Context != "" {
		sb.WriteString("PRODUCT CONTEXT\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		sb.WriteString(res.Context + "\n\n")
	}

	if data.Analysis != nil {
		if len(data.Analysis.Summary) > 0 {
			sb.WriteString("AI SUMMARY\n")
			sb.WriteString(strings.Repeat("-", 20) + "\n")
			for _, s := range data.Analysis.Summary {
				sb.WriteString(fmt.Sprintf("• %s\n", s))
			}
			sb.WriteString("\n")
		}

		if len(data.Analysis.ProductFacts) > 0 {
			sb.WriteString("PRODUCT FACTS\n")
			sb.WriteString(strings.Repeat("-", 20) + "\n")
			for _, f := range data.Analysis.ProductFacts {
				sb.WriteString(fmt.Sprintf("• [%s] %s\n", f.Category, f.Details))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
