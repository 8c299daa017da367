package domain

type IssueCategory string

const (
	IssueQuality     IssueCategory = "quality"
	IssueDelivery    IssueCategory = "delivery"
	IssuePrice       IssueCategory = "price"
	IssueDescription IssueCategory = "description"
	IssueService     IssueCategory = "service"
)

// IssueKeywords is the closed complaint taxonomy. Order is significant: it is
// the match priority and the tie-break order when ranking.
var IssueKeywords = []struct {
	Category IssueCategory
	Keywords []string
}{
	{IssueQuality, []string{"quality", "poor", "cheap", "broken", "defective"}},
	{IssueDelivery, []string{"delivery", "late", "slow", "shipping"}},
	{IssuePrice, []string{"price", "expensive", "overpriced"}},
	{IssueDescription, []string{"description", "different", "wrong"}},
	{IssueService, []string{"service", "customer", "support"}},
}

type IssueCount struct {
	Issue IssueCategory `json:"issue"`
	Count int           `json:"count"`
}

// AnalysisResult aggregates one review set. Neutral is always
// Total - Positive - Negative.
type AnalysisResult struct {
	Total    int
	Positive int
	Negative int
	Neutral  int
	Issues   []IssueCount
}
