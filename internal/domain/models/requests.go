package models

// Requests for the analysis HTTP endpoints. Defined in domain for consistency and reuse.

type ReportRequest struct {
	Format string `query:"format" json:"format" default:"json" validate:"oneof=json text"`
	Start  string `query:"start" json:"start" validate:"omitempty,datetime=2006-01-02"`
	End    string `query:"end" json:"end" validate:"omitempty,datetime=2006-01-02"`
}

type IndicatorRequest struct {
	Code    string `param:"code" json:"code" validate:"required,uppercase,max=32"`
	Periods int    `query:"periods" json:"periods" default:"3" validate:"gte=1,lte=100"`
	Start   string `query:"start" json:"start" validate:"omitempty,datetime=2006-01-02"`
	End     string `query:"end" json:"end" validate:"omitempty,datetime=2006-01-02"`
}
