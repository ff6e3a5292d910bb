// internal/leadscoring/weights.go
package leadscoring

// Scoring policy. Every point value and threshold used by ScoreRFQ lives here.
const (
	BaselineScore = 50

	IntentDetailedSpecsPoints = 20
	IntentItemsWithQtyPoints  = 12
	IntentDescriptivePoints   = 5
	IntentDescriptionMinLen   = 50

	BudgetExplicitPoints = 10
	BudgetImpliedPoints  = 5

	UrgencyImmediatePoints   = 15
	UrgencyPlannedPoints     = 5
	UrgencyPlannedMinDescLen = 80

	CoreCategoryPoints = 10
	TradeTypePoints    = 5

	HighValuePoints    = 10
	DealValuePerUnit   = 50000
	HighValueThreshold = 5000000
	LakhDivisor        = 100000

	MinScore = 0
	MaxScore = 100

	HotThreshold  = 70
	WarmThreshold = 45

	MaxSummaryReasons = 2
)

const (
	ReasonDetailedSpecs   = "Detailed specs with quantity and quality standards"
	ReasonItemsWithQty    = "Clear items with quantities"
	ReasonDescriptive     = "Descriptive requirement"
	ReasonExplicitBudget  = "Explicit budget/price reference"
	ReasonUrgent          = "Urgent delivery needed"
	ReasonSummaryFallback = "Basic requirement submitted"

	IntentStrong      = "Strong buying intent with clear specs"
	IntentModerate    = "Moderate intent — needs follow-up"
	IntentExploratory = "Exploratory — auto-nurture"
)

var budgetKeywords = []string{
	"budget",
	"price range",
	"target price",
	"not exceeding",
	"max price",
	"willing to pay",
}

var urgencyKeywords = []string{
	"urgent",
	"immediately",
	"asap",
	"rush",
	"within 7 days",
	"within 15 days",
	"emergency",
}

var coreCategories = []string{
	"steel",
	"metals",
	"chemicals",
	"polymers",
	"construction",
	"textiles",
	"food",
	"agriculture",
	"packaging",
	"industrial",
}
