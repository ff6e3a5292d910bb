// internal/workers/lead/notify-hot-lead/template.go
package notifyhotlead

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/shopspring/decimal"
)

var emailTemplate = template.Must(template.New("hot-lead-email").Funcs(template.FuncMap{
	"orDash": orDash,
	"inr":    formatINR,
}).Parse(`A new HOT lead needs a call back.

Session:     {{.SessionID}}
Company:     {{orDash .BuyerCompany}}
Location:    {{orDash .BuyerLocation}}
Category:    {{orDash .Category}}
Trade type:  {{if .TradeType}}{{.TradeType}}{{else}}-{{end}}

Confidence:  {{.ConfidenceScore}}/100
Urgency:     {{.Urgency}}
Budget:      {{.BudgetConfidence}}
Deal value:  {{inr .EstimatedDealValue}}

{{.AIReasonSummary}}
`))

var smsTemplate = template.Must(template.New("hot-lead-sms").Funcs(template.FuncMap{
	"orDash": orDash,
}).Parse(`HOT lead {{.SessionID}} ({{orDash .BuyerCompany}}, {{orDash .Category}}) scored {{.ConfidenceScore}}, needs IMMEDIATE follow-up.`))

func emailSubject(input *Input) string {
	return fmt.Sprintf("HOT RFQ lead: %s (%d)", orDash(input.BuyerCompany), input.ConfidenceScore)
}

func render(t *template.Template, input *Input) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, input); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func formatINR(v *float64) string {
	if v == nil {
		return "-"
	}
	return "₹" + decimal.NewFromFloat(*v).StringFixed(0)
}
