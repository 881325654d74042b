package analytics

import (
	"errors"
	"time"
)

const (
	DefaultForecastPeriods = 12
	MaxForecastPeriods     = 36
	confidenceBand         = 0.10
)

var ErrForecastPeriods = errors.New("forecast periods must be between 1 and 36")

type ForecastPoint struct {
	Month     string  `json:"month"`
	Predicted float64 `json:"predicted_placements"`
	Lower     float64 `json:"confidence_interval_lower"`
	Upper     float64 `json:"confidence_interval_upper"`
}

type Forecast struct {
	Points         []ForecastPoint `json:"points"`
	Slope          float64         `json:"slope"`
	Intercept      float64         `json:"intercept"`
	AverageMonthly float64         `json:"average_monthly"`
	GrowthRate     float64         `json:"growth_rate"`
	PeakMonth      string          `json:"peak_month"`
}

// BuildForecast fits a least-squares line through the monthly history and
// extends it periods months past the last observed month.
func BuildForecast(history []MonthCount, periods int) (*Forecast, error) {
	if periods == 0 {
		periods = DefaultForecastPeriods
	}
	if periods < 1 || periods > MaxForecastPeriods {
		return nil, ErrForecastPeriods
	}
	if len(history) < 2 {
		return nil, ErrNotEnoughData
	}
	last, err := time.Parse(monthLayout, history[len(history)-1].Month)
	if err != nil {
		return nil, err
	}

	n := float64(len(history))
	var sx, sy, sxy, sxx float64
	for i, h := range history {
		x, y := float64(i), float64(h.Placements)
		sx += x
		sy += y
		sxy += x * y
		sxx += x * x
	}
	f := &Forecast{}
	if den := n*sxx - sx*sx; den != 0 {
		f.Slope = (n*sxy - sx*sy) / den
	}
	f.Intercept = (sy - f.Slope*sx) / n

	total, peak := 0.0, -1.0
	for k := 0; k < periods; k++ {
		y := max(0, f.Intercept+f.Slope*float64(len(history)+k))
		y = round(y, 2)
		f.Points = append(f.Points, ForecastPoint{
			Month:     last.AddDate(0, k+1, 0).Format(monthLayout),
			Predicted: y,
			Lower:     round(y*(1-confidenceBand), 2),
			Upper:     round(y*(1+confidenceBand), 2),
		})
		total += y
		if y > peak {
			peak, f.PeakMonth = y, f.Points[k].Month
		}
	}
	f.Slope, f.Intercept = round(f.Slope, 4), round(f.Intercept, 4)
	f.AverageMonthly = round(total/float64(periods), 2)
	if first := f.Points[0].Predicted; first > 0 {
		f.GrowthRate = round((f.Points[periods-1].Predicted-first)/first*100, 1)
	}
	return f, nil
}
