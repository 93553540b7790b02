package tradelinestrategy

type Input struct {
	CreditSummary string `json:"creditSummary,omitempty"`
	IsBusiness    bool   `json:"isBusiness,omitempty"`
}

type Product struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Category struct {
	Category     string    `json:"category"`
	BusinessOnly bool      `json:"businessOnly"`
	Products     []Product `json:"products"`
}

type Output struct {
	Categories []Category `json:"categories"`
}
