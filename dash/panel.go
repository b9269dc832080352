package dash

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/midbel/barchart"
)

var ErrUnknownPanel = errors.New("unknown panel")

const (
	PanelRisk    = "risk"
	PanelTrading = "trading"
	PanelLedger  = "ledger"
)

const (
	DefaultWidth  = 600.0
	DefaultHeight = 400.0

	topRiskAccounts = 10
)

type Extractor func(*Snapshot) []barchart.Datum

type Panel struct {
	Name    string
	Title   string
	Config  barchart.Config
	Extract Extractor
}

func (p Panel) Data(snap *Snapshot) []barchart.Datum {
	if snap == nil || p.Extract == nil {
		return nil
	}
	return p.Extract(snap)
}

func (p Panel) Render(snap *Snapshot) barchart.Scene {
	return barchart.Render(p.Data(snap), p.Config)
}

type Layout struct {
	Width   float64
	Height  float64
	Palette barchart.SignPalette
}

func DefaultLayout() Layout {
	return Layout{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Palette: barchart.DefaultPalette,
	}
}

func Panels(lay Layout) []Panel {
	return []Panel{
		RiskPanel(lay),
		TradingPanel(lay),
		LedgerPanel(lay),
	}
}

func PanelByName(name string, lay Layout) (Panel, error) {
	for _, p := range Panels(lay) {
		if p.Name == name {
			return p, nil
		}
	}
	return Panel{}, fmt.Errorf("%w: %s", ErrUnknownPanel, name)
}

func RiskPanel(lay Layout) Panel {
	cfg := baseConfig(lay)
	cfg.Margin = barchart.Padding{Top: 20, Right: 30, Bottom: 80, Left: 80}
	cfg.AxisLabels = barchart.AxisLabels{X: "Account ID", Y: "Exposure ($)"}
	return Panel{
		Name:    PanelRisk,
		Title:   "Risk Exposure",
		Config:  cfg.Sized(lay.Width, lay.Height),
		Extract: RiskData,
	}
}

func TradingPanel(lay Layout) Panel {
	cfg := baseConfig(lay)
	cfg.Margin = barchart.Padding{Top: 20, Right: 30, Bottom: 60, Left: 80}
	cfg.ShowZeroLine = true
	cfg.AxisLabels = barchart.AxisLabels{X: "Symbol", Y: "PnL ($)"}
	return Panel{
		Name:    PanelTrading,
		Title:   "Trading P&L",
		Config:  cfg.Sized(lay.Width, lay.Height),
		Extract: TradingData,
	}
}

func LedgerPanel(lay Layout) Panel {
	cfg := baseConfig(lay)
	cfg.Margin = barchart.Padding{Top: 20, Right: 30, Bottom: 60, Left: 80}
	cfg.ShowZeroLine = true
	cfg.ShowValueLabels = true
	cfg.AxisLabels = barchart.AxisLabels{X: "Currency", Y: "Cash Balance ($)"}
	return Panel{
		Name:    PanelLedger,
		Title:   "Ledger Balances",
		Config:  cfg.Sized(lay.Width, lay.Height),
		Extract: LedgerData,
	}
}

func baseConfig(lay Layout) barchart.Config {
	return barchart.Config{
		BandPadding:         0.2,
		ValueLabelFormatter: barchart.FormatThousands,
		AxisValueFormatter:  barchart.FormatThousands,
		BarColorPolicy:      lay.Palette.Color,
	}
}

// RiskData keeps the accounts with the largest exposure.
func RiskData(snap *Snapshot) []barchart.Datum {
	list := make([]RiskAccount, len(snap.RiskAccounts))
	copy(list, snap.RiskAccounts)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Exposure > list[j].Exposure
	})
	if len(list) > topRiskAccounts {
		list = list[:topRiskAccounts]
	}
	data := make([]barchart.Datum, 0, len(list))
	for _, a := range list {
		data = append(data, barchart.NewDatum(a.AccountID, a.Exposure))
	}
	return data
}

// TradingData sums the realized pnl of the fills per symbol.
func TradingData(snap *Snapshot) []barchart.Datum {
	var g grouper
	for _, f := range snap.RecentFills {
		g.Add(f.Symbol, f.Pnl)
	}
	data := g.Data()
	sort.SliceStable(data, func(i, j int) bool {
		return data[i].Value > data[j].Value
	})
	return data
}

// LedgerData sums the cash balances per currency, largest magnitude first.
func LedgerData(snap *Snapshot) []barchart.Datum {
	var g grouper
	for _, b := range snap.AccountBalances {
		g.Add(b.Currency, b.CashBalance)
	}
	data := g.Data()
	sort.SliceStable(data, func(i, j int) bool {
		return math.Abs(data[i].Value) > math.Abs(data[j].Value)
	})
	return data
}

type grouper struct {
	keys   []string
	totals map[string]float64
}

func (g *grouper) Add(key string, value float64) {
	if g.totals == nil {
		g.totals = make(map[string]float64)
	}
	if _, ok := g.totals[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.totals[key] += value
}

func (g *grouper) Data() []barchart.Datum {
	data := make([]barchart.Datum, 0, len(g.keys))
	for _, k := range g.keys {
		data = append(data, barchart.NewDatum(k, g.totals[k]))
	}
	return data
}
