package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var catalog = map[string]string{
	"reminder.compliance_irs_1120.title":        "Form 1120 due in {days} days",
	"reminder.compliance_irs_1120.message":      "The federal income tax return for order {order_code} is due on {due_date}.",
	"reminder.compliance_irs_5472.title":        "Form 5472 due in {days} days",
	"reminder.compliance_irs_5472.message":      "The foreign-owned LLC information return for order {order_code} is due on {due_date}.",
	"reminder.compliance_annual_report.title":   "Annual report due in {days} days",
	"reminder.compliance_annual_report.message": "The {jurisdiction} annual report for order {order_code} is due on {due_date}.",
	"reminder.compliance_agent_renewal.title":   "Registered agent renewal due in {days} days",
	"reminder.compliance_agent_renewal.message": "The registered agent service for order {order_code} must be renewed by {due_date}.",
	"reminder.renewal.title":                    "Your LLC renewal is due in {window}",
	"reminder.renewal.message":                  "Hi {name}, your {jurisdiction} registered agent service expires on {due_date}. Renew now to keep your company in good standing.",
}

// TitleKey and MessageKey return the catalog keys for a category.
func TitleKey(c Category) string {
	return "reminder." + string(c) + ".title"
}

func MessageKey(c Category) string {
	return "reminder." + string(c) + ".message"
}

// Render looks key up in the catalog and substitutes {name} placeholders from params.
// Unknown keys render as the key itself.
func Render(key string, params map[string]string) string {
	text, ok := catalog[key]
	if !ok {
		return key
	}

	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", v)
	}

	return strings.NewReplacer(pairs...).Replace(text)
}

var emailTemplate = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1f2933;">
  <h2>{{.Title}}</h2>
  <p>{{.Message}}</p>
  {{- if .ActionURL}}
  <p><a href="{{.ActionURL}}">Open your dashboard</a></p>
  {{- end}}
</body>
</html>
`))

type EmailData struct {
	Title     string
	Message   string
	ActionURL string
}

// RenderEmail produces the HTML body of a reminder email.
func RenderEmail(data EmailData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering email: %w", err)
	}

	return buf.String(), nil
}

// RenderText produces the plain-text alternative of a reminder email.
func RenderText(data EmailData) string {
	var b strings.Builder

	b.WriteString(data.Title)
	b.WriteString("\n\n")
	b.WriteString(data.Message)

	if data.ActionURL != "" {
		b.WriteString("\n\n")
		b.WriteString(data.ActionURL)
	}

	b.WriteString("\n")

	return b.String()
}
