package domain

import "time"

// Extras flags optional meal-service add-ons.
type Extras struct {
	Breakfast bool `json:"breakfast"`
	Desserts  bool `json:"desserts"`
	Snacks    bool `json:"snacks"`
	Soup      bool `json:"soup"`
}

// PricingSelection ties the quote to a customer price list.
type PricingSelection struct {
	CustomerID     string  `json:"customerId,omitempty"`
	BasePercentage float64 `json:"basePercentage"`
	PricePerMeal   float64 `json:"pricePerMeal" validate:"gte=0"`
}

// QuoteFormData is the whole quote form. It is sent to the quote API as-is.
type QuoteFormData struct {
	CareHomeName        string           `json:"careHomeName" validate:"required,max=200"`
	NumberOfDiningRooms int              `json:"numberOfDiningRooms" validate:"gte=0,lte=50"`
	DiningRooms         []DiningRoom     `json:"diningRooms" validate:"max=50,dive"`
	SelectedMenu        MenuTier         `json:"selectedMenu,omitempty" validate:"omitempty,menutier"`
	Extras              Extras           `json:"extras"`
	MealsPerDay         float64          `json:"mealsPerDay" validate:"gte=0,lte=10"`
	DietaryRequirements float64          `json:"dietaryRequirements" validate:"gte=0,lte=100"`
	LaborRoles          []LaborRole      `json:"laborRoles" validate:"dive"`
	ApetitoLabor        ApetitoLabor     `json:"apetitoLabor"`
	Pricing             PricingSelection `json:"pricing"`
}

// MaxDiningRooms bounds the dining rooms of one form.
const MaxDiningRooms = 50

// Normalized returns a copy whose dining room list matches NumberOfDiningRooms when it was set.
// The count is capped at MaxDiningRooms; callers validate the raw form first to reject larger values.
func (f QuoteFormData) Normalized() QuoteFormData {
	normalized := f
	normalized.NumberOfDiningRooms = min(f.NumberOfDiningRooms, MaxDiningRooms)
	if normalized.NumberOfDiningRooms > 0 && len(f.DiningRooms) != normalized.NumberOfDiningRooms {
		normalized.DiningRooms = ResizeDiningRooms(f.DiningRooms, normalized.NumberOfDiningRooms)
	}
	if normalized.NumberOfDiningRooms == 0 {
		normalized.NumberOfDiningRooms = len(normalized.DiningRooms)
	}
	return normalized
}

const FailedQuoteSummary = "Failed to generate quote. Please try again."

// QuoteResponse is the server-computed quotation. It is display-only.
type QuoteResponse struct {
	QuoteID            string  `json:"quoteId,omitempty"`
	DailyCost          float64 `json:"dailyCost"`
	MonthlyCost        float64 `json:"monthlyCost"`
	YearlyCost         float64 `json:"yearlyCost"`
	CurrentAnnualCost  float64 `json:"currentAnnualCost"`
	ProposedAnnualCost float64 `json:"proposedAnnualCost"`
	AnnualSavings      float64 `json:"annualSavings"`
	SavingsPercentage  float64 `json:"savingsPercentage"`
	Summary            string  `json:"summary"`
}

// FailedQuoteResponse is shown in place of a quote when the request could not be completed.
func FailedQuoteResponse() QuoteResponse {
	return QuoteResponse{Summary: FailedQuoteSummary}
}

// SavedQuote is a quote record owned by the remote API.
type SavedQuote struct {
	ID           string        `json:"id,omitempty"`
	CareHomeName string        `json:"careHomeName" validate:"required"`
	FormData     QuoteFormData `json:"formData"`
	Response     QuoteResponse `json:"response"`
	CreatedAt    time.Time     `json:"createdAt,omitzero"`
	UpdatedAt    time.Time     `json:"updatedAt,omitzero"`
}

// QuoteHistory is one revision of a quote, typically produced by a chat question.
type QuoteHistory struct {
	ID        string        `json:"id"`
	QuoteID   string        `json:"quoteId"`
	Version   int           `json:"version"`
	Question  string        `json:"question,omitempty"`
	Response  QuoteResponse `json:"response"`
	CreatedAt time.Time     `json:"createdAt,omitzero"`
}

// ChatReply is the quoting service's answer to a conversational question.
type ChatReply struct {
	QuoteID  string         `json:"quoteId,omitempty"`
	Question string         `json:"question"`
	Answer   string         `json:"answer"`
	Response *QuoteResponse `json:"response,omitempty"`
}

// HubSpotSync reports the CRM push result for a quote.
type HubSpotSync struct {
	QuoteID string `json:"quoteId"`
	DealID  string `json:"dealId,omitempty"`
	Status  string `json:"status"`
}
