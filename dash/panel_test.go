package dash

import (
	"fmt"
	"testing"

	"github.com/midbel/barchart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskData(t *testing.T) {
	data := RiskData(testSnapshot())
	assert.Equal(t, []barchart.Datum{
		{Label: "ACC-002", Value: 450000},
		{Label: "ACC-001", Value: 120000},
		{Label: "ACC-003", Value: 90000},
	}, data)
}

func TestRiskDataTopTen(t *testing.T) {
	var snap Snapshot
	for i := 0; i < 25; i++ {
		acc := RiskAccount{
			AccountID: fmt.Sprintf("ACC-%03d", i),
			Exposure:  float64(i * 1000),
		}
		snap.RiskAccounts = append(snap.RiskAccounts, acc)
	}
	data := RiskData(&snap)
	require.Len(t, data, 10)
	assert.Equal(t, "ACC-024", data[0].Label)
	assert.Equal(t, "ACC-015", data[9].Label)
	assert.Len(t, snap.RiskAccounts, 25)
	assert.Equal(t, "ACC-000", snap.RiskAccounts[0].AccountID)
}

func TestTradingData(t *testing.T) {
	data := TradingData(testSnapshot())
	assert.Equal(t, []barchart.Datum{
		{Label: "AAPL", Value: 2200},
		{Label: "GOOG", Value: 300},
		{Label: "MSFT", Value: -2500},
	}, data)
}

func TestLedgerData(t *testing.T) {
	data := LedgerData(testSnapshot())
	assert.Equal(t, []barchart.Datum{
		{Label: "EUR", Value: -400000},
		{Label: "USD", Value: 300000},
		{Label: "JPY", Value: 10000},
	}, data)
}

func TestPanels(t *testing.T) {
	panels := Panels(DefaultLayout())
	require.Len(t, panels, 3)

	risk := panels[0]
	assert.Equal(t, PanelRisk, risk.Name)
	assert.False(t, risk.Config.ShowZeroLine)
	assert.Equal(t, 490.0, risk.Config.PlotWidth)
	assert.Equal(t, 300.0, risk.Config.PlotHeight)

	trading := panels[1]
	assert.True(t, trading.Config.ShowZeroLine)
	assert.False(t, trading.Config.ShowValueLabels)
	assert.Equal(t, 320.0, trading.Config.PlotHeight)

	ledger := panels[2]
	assert.True(t, ledger.Config.ShowValueLabels)
	assert.Equal(t, "Cash Balance ($)", ledger.Config.AxisLabels.Y)

	for _, p := range panels {
		scene := p.Render(testSnapshot())
		assert.Equal(t, DefaultWidth, scene.Width, p.Name)
		assert.Equal(t, DefaultHeight, scene.Height, p.Name)
		assert.NotEmpty(t, scene.Bars, p.Name)
	}
}

func TestPanelByName(t *testing.T) {
	p, err := PanelByName(PanelLedger, DefaultLayout())
	require.NoError(t, err)
	assert.Equal(t, PanelLedger, p.Name)

	_, err = PanelByName("pie", DefaultLayout())
	assert.ErrorIs(t, err, ErrUnknownPanel)
}

func TestPanelPalette(t *testing.T) {
	lay := DefaultLayout()
	lay.Palette = barchart.SignPalette{Positive: "#0000ff", Negative: "#ff8800"}

	scene := TradingPanel(lay).Render(testSnapshot())
	require.Len(t, scene.Bars, 3)
	assert.Equal(t, "#0000ff", scene.Bars[0].Color)
	assert.Equal(t, "#ff8800", scene.Bars[2].Color)
}

func TestPanelNilSnapshot(t *testing.T) {
	scene := RiskPanel(DefaultLayout()).Render(nil)
	assert.True(t, scene.Empty())
}
