package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.Equal(t, 14, c.Len())
	assert.Equal(t, CodeUnemployment, c.Codes()[0])
	assert.Equal(t, CodeRealConsumption, c.Codes()[13])

	basket := map[string]Polarity{}
	for _, ind := range c.Entries() {
		if ind.Polarity != PolarityNone {
			basket[ind.Code] = ind.Polarity
		}
	}
	assert.Equal(t, map[string]Polarity{
		CodeUnemployment:      PolarityNegativeGood,
		CodeInflation:         PolarityNegativeGood,
		CodeFedFunds:          PolarityNegativeGood,
		CodePayrolls:          PolarityPositiveGood,
		CodeConsumerSentiment: PolarityPositiveGood,
		CodeIndustrialProd:    PolarityPositiveGood,
	}, basket)
}

func TestNewCatalogSkipsDuplicates(t *testing.T) {
	c := NewCatalog(
		Indicator{Code: "A", Label: "first"},
		Indicator{Code: ""},
		Indicator{Code: "A", Label: "second"},
		Indicator{Code: "B"},
	)
	assert.Equal(t, []string{"A", "B"}, c.Codes())
	assert.Equal(t, "first", c.Label("A"))
	assert.Equal(t, "B", c.Label("B"))
	assert.Equal(t, "ZZZ", c.Label("ZZZ"))

	_, ok := c.Lookup("ZZZ")
	assert.False(t, ok)
}

func TestCatalogEntriesIsACopy(t *testing.T) {
	c := DefaultCatalog()
	e := c.Entries()
	e[0].Label = "changed"
	assert.Equal(t, "Unemployment Rate (%)", c.Label(CodeUnemployment))
}

func TestTrendLabelDirection(t *testing.T) {
	for _, l := range []TrendLabel{TrendStrongDown, TrendMildDown} {
		assert.True(t, l.IsDown())
		assert.False(t, l.IsUp())
	}
	for _, l := range []TrendLabel{TrendStable, TrendInsufficient, TrendIndeterminate} {
		assert.False(t, l.IsDown())
		assert.False(t, l.IsUp())
	}
	assert.True(t, TrendMildUp.IsUp())
}
