package models

// FRED series codes used by the analysis rules.
const (
	CodeUnemployment      = "UNRATE"
	CodeInflation         = "CPIAUCSL"
	CodeRealGDP           = "GDPC1"
	CodeFedFunds          = "FEDFUNDS"
	CodePayrolls          = "PAYEMS"
	CodeIndustrialProd    = "INDPRO"
	CodeHousingStarts     = "HOUST"
	CodeConsumerSentiment = "UMCSENT"
	CodeUSDEUR            = "DEXUSEU"
	CodeTreasury10Y       = "DGS10"
	CodeManufacturingEmp  = "MANEMP"
	CodeParticipation     = "CIVPART"
	CodePrivateInvestment = "GPDI"
	CodeRealConsumption   = "PCEC96"
)

// Indicator is one catalog entry.
type Indicator struct {
	Code     string   `json:"code" yaml:"code"`
	Label    string   `json:"label" yaml:"label"`
	Polarity Polarity `json:"polarity,omitempty" yaml:"polarity"`
}

// Catalog is an ordered, immutable list of indicators. Order drives report
// order and the per-indicator prediction pass.
type Catalog struct {
	entries []Indicator
	index   map[string]int
}

// NewCatalog builds a catalog; later duplicates of a code are ignored.
func NewCatalog(entries ...Indicator) Catalog {
	c := Catalog{
		entries: make([]Indicator, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Code == "" {
			continue
		}
		if _, dup := c.index[e.Code]; dup {
			continue
		}
		c.index[e.Code] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// DefaultCatalog returns the 14 FRED indicators tracked by the report.
func DefaultCatalog() Catalog {
	return NewCatalog(
		Indicator{Code: CodeUnemployment, Label: "Unemployment Rate (%)", Polarity: PolarityNegativeGood},
		Indicator{Code: CodeInflation, Label: "Inflation (CPI)", Polarity: PolarityNegativeGood},
		Indicator{Code: CodeRealGDP, Label: "Real GDP"},
		Indicator{Code: CodeFedFunds, Label: "Fed Funds Rate (%)", Polarity: PolarityNegativeGood},
		Indicator{Code: CodePayrolls, Label: "Nonfarm Payrolls (NFP)", Polarity: PolarityPositiveGood},
		Indicator{Code: CodeIndustrialProd, Label: "Industrial Production", Polarity: PolarityPositiveGood},
		Indicator{Code: CodeHousingStarts, Label: "Housing Starts"},
		Indicator{Code: CodeConsumerSentiment, Label: "Consumer Sentiment Index", Polarity: PolarityPositiveGood},
		Indicator{Code: CodeUSDEUR, Label: "USD/EUR Exchange Rate"},
		Indicator{Code: CodeTreasury10Y, Label: "10-Year Treasury Yield (%)"},
		Indicator{Code: CodeManufacturingEmp, Label: "Manufacturing Employment"},
		Indicator{Code: CodeParticipation, Label: "Labor Force Participation Rate"},
		Indicator{Code: CodePrivateInvestment, Label: "Gross Private Domestic Investment"},
		Indicator{Code: CodeRealConsumption, Label: "Real Personal Consumption Expenditures"},
	)
}

// Entries returns a copy of the catalog in order.
func (c Catalog) Entries() []Indicator {
	out := make([]Indicator, len(c.entries))
	copy(out, c.entries)
	return out
}

// Codes returns indicator codes in catalog order.
func (c Catalog) Codes() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Code
	}
	return out
}

// Lookup finds an indicator by code.
func (c Catalog) Lookup(code string) (Indicator, bool) {
	i, ok := c.index[code]
	if !ok {
		return Indicator{}, false
	}
	return c.entries[i], true
}

// Label returns the display label for code, or the code itself if unknown.
func (c Catalog) Label(code string) string {
	if ind, ok := c.Lookup(code); ok && ind.Label != "" {
		return ind.Label
	}
	return code
}

// Len returns the number of indicators.
func (c Catalog) Len() int { return len(c.entries) }
