package dash

import (
	"context"
	"sync/atomic"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Health: SystemHealth{
			Status:                 "UP",
			AvgLatencyMs:           12,
			DownstreamHealthyCount: 3,
			DownstreamTotalCount:   3,
		},
		RiskAccounts: []RiskAccount{
			{AccountID: "ACC-001", Book: "EQ", Exposure: 120000, Utilization: 0.4},
			{AccountID: "ACC-002", Book: "EQ", Exposure: 450000, Utilization: 0.8},
			{AccountID: "ACC-003", Book: "FX", Exposure: 90000, Utilization: 0.1},
		},
		RecentFills: []Fill{
			{FillID: "F1", Symbol: "AAPL", Side: "BUY", Quantity: 10, Price: 190, Pnl: 1500},
			{FillID: "F2", Symbol: "MSFT", Side: "SELL", Quantity: 5, Price: 410, Pnl: -2500},
			{FillID: "F3", Symbol: "AAPL", Side: "SELL", Quantity: 10, Price: 191, Pnl: 700},
			{FillID: "F4", Symbol: "GOOG", Side: "BUY", Quantity: 3, Price: 150, Pnl: 300},
		},
		AccountBalances: []Balance{
			{AccountID: "ACC-001", Currency: "USD", CashBalance: 250000},
			{AccountID: "ACC-002", Currency: "EUR", CashBalance: -400000},
			{AccountID: "ACC-003", Currency: "USD", CashBalance: 50000},
			{AccountID: "ACC-004", Currency: "JPY", CashBalance: 10000},
		},
	}
}

type countingSource struct {
	calls atomic.Int32
	snap  *Snapshot
	err   error
}

func (s *countingSource) Fetch(context.Context) (*Snapshot, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.snap, nil
}
