package analytics

// Summary counts one owner's applications by status. The status keys mirror
// the stored status values.
type Summary struct {
	Total      int `json:"total"`
	InProgress int `json:"In-Progress"`
	Offer      int `json:"Offer"`
	Rejected   int `json:"Rejected"`
}

type StatusCounts struct {
	InProgress int `json:"In-Progress"`
	Offer      int `json:"Offer"`
	Rejected   int `json:"Rejected"`
}

type CompanyStat struct {
	Company    string `json:"company"`
	Total      int    `json:"total"`
	Offers     int    `json:"offers"`
	Rejected   int    `json:"rejected"`
	InProgress int    `json:"inProgress"`
}

// RoundStat answers "at which round do I get rejected most often".
type RoundStat struct {
	Round string `json:"round"`
	Count int    `json:"count"`
}

type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

type GlobalStats struct {
	TotalUsers           int            `json:"totalUsers"`
	TotalApplications    int            `json:"totalApplications"`
	ApplicationsByStatus StatusCounts   `json:"applicationsByStatus"`
	TopCompanies         []CompanyCount `json:"topCompanies"`
}
