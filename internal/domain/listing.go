package domain

// GradingCompany identifies a third-party card grading service.
type GradingCompany string

const (
	GradingPSA GradingCompany = "PSA"
	GradingBGS GradingCompany = "BGS"
	GradingCGC GradingCompany = "CGC"
	GradingSGC GradingCompany = "SGC"
	GradingTAG GradingCompany = "TAG"
	GradingACE GradingCompany = "ACE"
	GradingPCA GradingCompany = "PCA"
)

// DefaultDealScore is the neutral score every listing starts from before the
// scorer applies arbitrage and steal adjustments.
const DefaultDealScore = 50

// Listing is one observed fixed-price ask from the structured-listing
// marketplace. Only listings whose title yielded a valid grade signal
// survive ingestion, so Company and Grade are always populated together.
// DealScore and the flags are mutated by the scorer within a single
// aggregation cycle; everything else is immutable as received.
type Listing struct {
	Title       string         `json:"title"`
	Price       float64        `json:"price"`
	Currency    string         `json:"currency"`
	Company     GradingCompany `json:"company"`
	Grade       float64        `json:"grade"`
	URL         string         `json:"url"`
	ImageURL    string         `json:"image_url,omitempty"`
	Condition   string         `json:"condition"`
	Location    string         `json:"location"`
	Source      string         `json:"source"`
	DealScore   int            `json:"deal_score"`
	IsArbitrage bool           `json:"arbitrage_opportunity"`
	IsSteal     bool           `json:"is_steal"`
}
