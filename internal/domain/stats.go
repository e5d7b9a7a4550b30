package domain

type StatsOverview struct {
	TotalCrimes int64 `json:"totalCrimes"`
	TotalUsers  int64 `json:"totalUsers"`
}

type CategoryCount struct {
	Category string `db:"category" json:"category"`
	Count    int64  `db:"count" json:"count"`
}

type SeverityCount struct {
	Severity string `db:"severity" json:"severity"`
	Count    int64  `db:"count" json:"count"`
}

type DailyCount struct {
	Date  string `db:"date" json:"date"`
	Count int64  `db:"count" json:"count"`
}

type CityCount struct {
	City  string `db:"city" json:"city"`
	Count int64  `db:"count" json:"count"`
}

type Statistics struct {
	Overview   StatsOverview   `json:"overview"`
	ByCategory []CategoryCount `json:"crimesByCategory"`
	BySeverity []SeverityCount `json:"crimesBySeverity"`
	Last7Days  []DailyCount    `json:"crimesLast7Days"`
	ByCity     []CityCount     `json:"crimesByCity"`
}
