// internal/leadscoring/scorer.go
package leadscoring

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// signals holds the intermediate state shared between scoring categories.
type signals struct {
	score   int
	reasons []string

	hasItems   bool
	hasQty     bool
	hasQuality bool

	description string
	descLen     int
}

func (s *signals) add(points int, reason string) {
	s.score += points
	if reason != "" {
		s.reasons = append(s.reasons, reason)
	}
}

// ScoreRFQ classifies a single RFQ into a HOT/WARM/COLD lead. It never fails and
// identical input always yields identical output.
func ScoreRFQ(input RFQInput) LeadScore {
	desc := deref(input.Description)
	s := &signals{
		score:       BaselineScore,
		hasItems:    len(input.Items) > 0,
		hasQty:      hasPositiveQuantity(input.Items),
		hasQuality:  deref(input.QualityStandards) != "",
		description: strings.ToLower(desc),
		descLen:     utf8.RuneCountInString(desc),
	}

	scoreIntent(s)
	budget := scoreBudget(s)
	urgency := scoreUrgency(s)
	fit := scoreCategory(s, deref(input.Category))
	scoreTradeType(s, input.TradeType)

	dealValue := estimateDealValue(input.Items)
	if dealValue != nil && dealValue.GreaterThan(decimal.NewFromInt(HighValueThreshold)) {
		lakhs := dealValue.Div(decimal.NewFromInt(LakhDivisor)).StringFixed(0)
		s.add(HighValuePoints, fmt.Sprintf("High estimated value: ₹%sL", lakhs))
	}

	confidence := clamp(s.score, MinScore, MaxScore)
	tier, intent := classifyTier(confidence)

	result := LeadScore{
		LeadScore:        tier,
		ConfidenceScore:  confidence,
		IntentStrength:   intent,
		BudgetConfidence: budget,
		Urgency:          urgency,
		CategoryFit:      fit,
		AIReasonSummary:  summarize(s.reasons),
	}
	if dealValue != nil {
		v, _ := dealValue.Float64()
		result.EstimatedDealValue = &v
	}
	return result
}

// Only the highest matching tier applies.
func scoreIntent(s *signals) {
	switch {
	case s.hasItems && s.hasQty && s.hasQuality:
		s.add(IntentDetailedSpecsPoints, ReasonDetailedSpecs)
	case s.hasQty:
		s.add(IntentItemsWithQtyPoints, ReasonItemsWithQty)
	case s.descLen > IntentDescriptionMinLen:
		s.add(IntentDescriptivePoints, ReasonDescriptive)
	}
}

func scoreBudget(s *signals) BudgetConfidence {
	switch {
	case containsAny(s.description, budgetKeywords):
		s.add(BudgetExplicitPoints, ReasonExplicitBudget)
		return BudgetHigh
	case s.hasQty:
		s.add(BudgetImpliedPoints, "")
		return BudgetMedium
	default:
		return BudgetLow
	}
}

func scoreUrgency(s *signals) Urgency {
	switch {
	case containsAny(s.description, urgencyKeywords):
		s.add(UrgencyImmediatePoints, ReasonUrgent)
		return UrgencyImmediate
	case s.descLen > UrgencyPlannedMinDescLen && s.hasQty:
		s.add(UrgencyPlannedPoints, "")
		return Urgency30Days
	default:
		return UrgencyExploratory
	}
}

// The reason quotes the category exactly as the buyer typed it.
func scoreCategory(s *signals, category string) string {
	if containsAny(strings.ToLower(category), coreCategories) {
		s.add(CoreCategoryPoints, "Core category: "+category)
		return CategoryFitCore
	}
	return CategoryFitNonCore
}

func scoreTradeType(s *signals, tradeType TradeType) {
	if tradeType == TradeTypeImport || tradeType == TradeTypeExport {
		s.add(TradeTypePoints, fmt.Sprintf("%s trade — higher value potential", tradeType))
	}
}

// estimateDealValue returns nil when there are no items or the total quantity is
// not positive.
func estimateDealValue(items []LineItem) *decimal.Decimal {
	if len(items) == 0 {
		return nil
	}
	total := decimal.Zero
	for _, item := range items {
		if item.Quantity != nil {
			total = total.Add(decimal.NewFromFloat(*item.Quantity))
		}
	}
	if !total.IsPositive() {
		return nil
	}
	value := total.Mul(decimal.NewFromInt(DealValuePerUnit))
	return &value
}

func classifyTier(confidence int) (Tier, string) {
	switch {
	case confidence >= HotThreshold:
		return TierHot, IntentStrong
	case confidence >= WarmThreshold:
		return TierWarm, IntentModerate
	default:
		return TierCold, IntentExploratory
	}
}

func summarize(reasons []string) string {
	if len(reasons) == 0 {
		return ReasonSummaryFallback
	}
	if len(reasons) > MaxSummaryReasons {
		reasons = reasons[:MaxSummaryReasons]
	}
	return strings.Join(reasons, ". ")
}

func hasPositiveQuantity(items []LineItem) bool {
	for _, item := range items {
		if item.Quantity != nil && *item.Quantity > 0 {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
