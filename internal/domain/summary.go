package domain

// DailySummary is the point-in-time rollup emitted once per aggregation run.
// It is fully recomputed each time; no incremental state.
//
// Invariants on every emitted summary:
// Overdue <= TotalBills, Critical <= Overdue, OverdueAmount <= TotalAmount.
type DailySummary struct {
	Date          string `json:"date"`
	TotalBills    int    `json:"totalBills"`
	Overdue       int    `json:"overdue"`
	Critical      int    `json:"critical"`
	TotalAmount   int64  `json:"totalAmount"`
	OverdueAmount int64  `json:"overdueAmount"`
}

// DashboardSummary is the richer snapshot served by GET /payguard/summary.
// Unlike DailySummary it is a read-side convenience, not part of the event
// wire contract.
type DashboardSummary struct {
	TotalBills    int    `json:"totalBills"`
	OverdueBills  int    `json:"overdueBills"`
	CriticalBills int    `json:"criticalBills"`
	DueSoonBills  int    `json:"dueSoonBills"`
	TotalAmount   int64  `json:"totalAmount"`
	OverdueAmount int64  `json:"overdueAmount"`
	RecentBills   []Bill `json:"recentBills"`
	LastUpdated   string `json:"lastUpdated"`
}
