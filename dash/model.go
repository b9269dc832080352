package dash

import (
	"encoding/json"
	"fmt"
	"io"
)

type RiskyAccount struct {
	AccountID         string  `json:"accountId" yaml:"accountId"`
	Book              string  `json:"book" yaml:"book"`
	NetExposure       float64 `json:"netExposure" yaml:"netExposure"`
	MarginUtilization float64 `json:"marginUtilization" yaml:"marginUtilization"`
}

type SystemHealth struct {
	Status                 string  `json:"status" yaml:"status"`
	AvgLatencyMs           float64 `json:"avgLatencyMs" yaml:"avgLatencyMs"`
	DownstreamHealthyCount int     `json:"downstreamHealthyCount" yaml:"downstreamHealthyCount"`
	DownstreamTotalCount   int     `json:"downstreamTotalCount" yaml:"downstreamTotalCount"`
}

type RiskSummary struct {
	TotalNetExposure     float64 `json:"totalNetExposure" yaml:"totalNetExposure"`
	MaxMarginUtilization float64 `json:"maxMarginUtilization" yaml:"maxMarginUtilization"`
}

type TradingSummary struct {
	OpenOrders  int     `json:"openOrders" yaml:"openOrders"`
	FilledToday int     `json:"filledToday" yaml:"filledToday"`
	RealizedPnl float64 `json:"realizedPnl" yaml:"realizedPnl"`
}

type LatencyMetrics struct {
	RiskServiceMs    float64 `json:"riskServiceMs" yaml:"riskServiceMs"`
	TradingServiceMs float64 `json:"tradingServiceMs" yaml:"tradingServiceMs"`
	LedgerServiceMs  float64 `json:"ledgerServiceMs" yaml:"ledgerServiceMs"`
}

type RiskAccount struct {
	AccountID   string  `json:"accountId" yaml:"accountId"`
	Book        string  `json:"book" yaml:"book"`
	Exposure    float64 `json:"exposure" yaml:"exposure"`
	Utilization float64 `json:"utilization" yaml:"utilization"`
}

type RiskMetric struct {
	MetricType string  `json:"metricType" yaml:"metricType"`
	Value      float64 `json:"value" yaml:"value"`
	Status     string  `json:"status" yaml:"status"`
}

type Order struct {
	OrderID  string  `json:"orderId" yaml:"orderId"`
	Symbol   string  `json:"symbol" yaml:"symbol"`
	Side     string  `json:"side" yaml:"side"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
	Price    float64 `json:"price" yaml:"price"`
	Status   string  `json:"status" yaml:"status"`
}

type Fill struct {
	FillID   string  `json:"fillId" yaml:"fillId"`
	Symbol   string  `json:"symbol" yaml:"symbol"`
	Side     string  `json:"side" yaml:"side"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
	Price    float64 `json:"price" yaml:"price"`
	Pnl      float64 `json:"pnl" yaml:"pnl"`
}

type Balance struct {
	AccountID       string  `json:"accountId" yaml:"accountId"`
	Currency        string  `json:"currency" yaml:"currency"`
	CashBalance     float64 `json:"cashBalance" yaml:"cashBalance"`
	MarginUsed      float64 `json:"marginUsed" yaml:"marginUsed"`
	AvailableMargin float64 `json:"availableMargin" yaml:"availableMargin"`
}

type Transaction struct {
	TransactionID   string  `json:"transactionId" yaml:"transactionId"`
	AccountID       string  `json:"accountId" yaml:"accountId"`
	TransactionType string  `json:"transactionType" yaml:"transactionType"`
	Currency        string  `json:"currency" yaml:"currency"`
	Amount          float64 `json:"amount" yaml:"amount"`
	Status          string  `json:"status" yaml:"status"`
}

// Snapshot is the consolidated view-model served by the BFF.
type Snapshot struct {
	TopRiskyAccounts   []RiskyAccount `json:"topRiskyAccounts" yaml:"topRiskyAccounts"`
	Health             SystemHealth   `json:"health" yaml:"health"`
	RiskSummary        RiskSummary    `json:"riskSummary" yaml:"riskSummary"`
	TradingSummary     TradingSummary `json:"tradingSummary" yaml:"tradingSummary"`
	LatencyMetrics     LatencyMetrics `json:"latencyMetrics" yaml:"latencyMetrics"`
	RiskAccounts       []RiskAccount  `json:"riskAccounts" yaml:"riskAccounts"`
	RiskMetrics        []RiskMetric   `json:"riskMetrics" yaml:"riskMetrics"`
	OpenOrders         []Order        `json:"openOrders" yaml:"openOrders"`
	RecentFills        []Fill         `json:"recentFills" yaml:"recentFills"`
	AccountBalances    []Balance      `json:"accountBalances" yaml:"accountBalances"`
	RecentTransactions []Transaction  `json:"recentTransactions" yaml:"recentTransactions"`
}

func Decode(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
