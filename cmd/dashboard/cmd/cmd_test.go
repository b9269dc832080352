package cmd

import (
	"strings"
	"testing"

	"github.com/midbel/barchart"
	"github.com/midbel/barchart/dash"
	"github.com/midbel/barchart/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadData(t *testing.T) {
	const input = `currency,balance
USD, 300000
EUR,-400000
JPY,10000
`
	data, err := readData(strings.NewReader(input), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []barchart.Datum{
		{Label: "USD", Value: 300000},
		{Label: "EUR", Value: -400000},
		{Label: "JPY", Value: 10000},
	}, data)
}

func TestReadDataErrors(t *testing.T) {
	tests := []struct {
		Name  string
		Input string
		X, Y  int
	}{
		{Name: "same column", Input: "a,b\nx,1\n", X: 1, Y: 1},
		{Name: "negative column", Input: "a,b\nx,1\n", X: -1, Y: 1},
		{Name: "missing column", Input: "a,b\nx,1\n", X: 0, Y: 2},
		{Name: "not a number", Input: "a,b\nx,one\n", X: 0, Y: 1},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := readData(strings.NewReader(tt.Input), tt.X, tt.Y)
			assert.Error(t, err)
		})
	}
}

func TestReadDataEmpty(t *testing.T) {
	data, err := readData(strings.NewReader(""), 0, 1)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestSelectPanels(t *testing.T) {
	settings = config.Default()

	all, err := selectPanels(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	list, err := selectPanels([]string{dash.PanelLedger, dash.PanelRisk})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, dash.PanelLedger, list[0].Name)
	assert.Equal(t, dash.PanelRisk, list[1].Name)

	_, err = selectPanels([]string{"pie"})
	assert.ErrorIs(t, err, dash.ErrUnknownPanel)
}

func TestLayout(t *testing.T) {
	settings = config.Default()
	settings.Chart.Positive = "#0000ff"

	lay := layout()
	assert.Equal(t, 600.0, lay.Width)
	assert.Equal(t, "#0000ff", lay.Palette.Color(1))
	assert.Equal(t, "#f44336", lay.Palette.Color(-1))
}
