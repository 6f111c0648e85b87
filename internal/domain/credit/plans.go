package credit

// Plan is a purchasable credit package.
type Plan struct {
	ID                string  `json:"id"`
	PackageName       string  `json:"packageName"`
	Credits           int     `json:"credits"`
	Price             float64 `json:"price"`
	Currency          string  `json:"currency"`
	PricePerCredit    float64 `json:"pricePerCredit"`
	Savings           float64 `json:"savings"`
	SavingsPercentage int     `json:"savingsPercentage"`
	Popular           bool    `json:"popular,omitempty"`
}

var plans = []Plan{
	{ID: "starter", PackageName: "Starter", Credits: 1, Price: 5, Currency: "EUR", PricePerCredit: 5},
	{ID: "small-bundle", PackageName: "Small Bundle", Credits: 2, Price: 8, Currency: "EUR", PricePerCredit: 4, Savings: 2, SavingsPercentage: 20},
	{ID: "popular-choice", PackageName: "Popular Choice", Credits: 5, Price: 18, Currency: "EUR", PricePerCredit: 3.6, Savings: 7, SavingsPercentage: 28, Popular: true},
	{ID: "pro-bundle", PackageName: "Pro Bundle", Credits: 10, Price: 34, Currency: "EUR", PricePerCredit: 3.4, Savings: 16, SavingsPercentage: 32},
	{ID: "power-seller", PackageName: "Power Seller", Credits: 20, Price: 65, Currency: "EUR", PricePerCredit: 3.25, Savings: 35, SavingsPercentage: 35},
	{ID: "ultimate-plan", PackageName: "Ultimate Plan", Credits: 50, Price: 150, Currency: "EUR", PricePerCredit: 3, Savings: 100, SavingsPercentage: 40},
}

func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

func FindPlan(id string) (Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
