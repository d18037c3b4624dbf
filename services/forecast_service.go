package services

import (
	"fmt"
	"math"
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/repository"
)

// ForecastService predicts daily sales from the derived daily summaries.
// Ordinary least squares over the last 90 days, blended 50/50 with the
// day-of-week historical average and scaled by a fixed month multiplier.
// Nothing is persisted; every call recomputes from scratch.
type ForecastService struct {
	SummaryRepo *repository.SummaryRepository
}

func NewForecastService(summaryRepo *repository.SummaryRepository) *ForecastService {
	return &ForecastService{SummaryRepo: summaryRepo}
}

const forecastHistoryDays = 90

// seasonal lookup; the weather factor is a constant 1.0 placeholder
var monthMultiplier = map[time.Month]float64{
	time.January:   0.90,
	time.February:  0.92,
	time.March:     0.97,
	time.April:     1.00,
	time.May:       1.05,
	time.June:      1.08,
	time.July:      1.10,
	time.August:    1.08,
	time.September: 1.00,
	time.October:   1.02,
	time.November:  1.05,
	time.December:  1.15,
}

const weatherFactor = 1.0

type ForecastDay struct {
	Date      string  `json:"date"`
	Predicted float64 `json:"predicted"`
}

type Forecast struct {
	Days       []ForecastDay `json:"days"`
	Confidence float64       `json:"confidence"`
	BasedOn    int           `json:"basedOnDays"`
}

type series struct {
	dates  []time.Time
	values []float64
}

func (s *ForecastService) history() (*series, error) {
	rows, err := s.SummaryRepo.LatestDaily(forecastHistoryDays)
	if err != nil {
		return nil, err
	}
	out := &series{}
	for _, r := range rows {
		out.dates = append(out.dates, r.Date)
		out.values = append(out.values, r.GrossSale.InexactFloat64())
	}
	return out, nil
}

// Next7Days produces the 7-day prediction.
func (s *ForecastService) Next7Days() (*Forecast, error) {
	hist, err := s.history()
	if err != nil {
		return nil, err
	}
	if len(hist.values) < 7 {
		return nil, fmt.Errorf("need at least 7 days of history, have %d", len(hist.values))
	}

	slope, intercept := olsFit(hist.values)
	weekday := weekdayMeans(hist)

	start := hist.dates[len(hist.dates)-1].AddDate(0, 0, 1)
	f := &Forecast{BasedOn: len(hist.values), Confidence: confidence(hist.values)}
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		f.Days = append(f.Days, ForecastDay{
			Date:      day.Format(time.DateOnly),
			Predicted: round2(predictDay(slope, intercept, len(hist.values)+i, weekday, day)),
		})
	}
	return f, nil
}

func predictDay(slope, intercept float64, x int, weekday map[time.Weekday]float64, day time.Time) float64 {
	trend := slope*float64(x) + intercept
	blend := trend
	if wd, ok := weekday[day.Weekday()]; ok {
		blend = 0.5*trend + 0.5*wd
	}
	p := blend * monthMultiplier[day.Month()] * weatherFactor
	if p < 0 {
		p = 0
	}
	return p
}

// olsFit returns the least-squares line over y indexed 0..n-1.
func olsFit(y []float64) (slope, intercept float64) {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	den := n*sumXX - sumX*sumX
	if den == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / den
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

func weekdayMeans(hist *series) map[time.Weekday]float64 {
	sums := map[time.Weekday]float64{}
	counts := map[time.Weekday]int{}
	for i, d := range hist.dates {
		sums[d.Weekday()] += hist.values[i]
		counts[d.Weekday()]++
	}
	out := map[time.Weekday]float64{}
	for wd, sum := range sums {
		out[wd] = sum / float64(counts[wd])
	}
	return out
}

// confidence = 1 − recent 7-day stddev / historical mean, clamped [0.5, 0.95]
func confidence(values []float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0.5
	}
	recent := values
	if len(recent) > 7 {
		recent = recent[len(recent)-7:]
	}
	c := 1 - stddev(recent)/m
	if c < 0.5 {
		c = 0.5
	}
	if c > 0.95 {
		c = 0.95
	}
	return round2(c)
}

type Accuracy struct {
	MAPE    float64 `json:"mape"`
	RMSE    float64 `json:"rmse"`
	Samples int     `json:"samples"`
}

// Accuracy replays the forecast over the trailing window and scores it
// against actuals.
func (s *ForecastService) Accuracy(windowDays int) (*Accuracy, error) {
	if windowDays <= 0 {
		windowDays = 14
	}
	hist, err := s.history()
	if err != nil {
		return nil, err
	}
	if len(hist.values) < windowDays+7 {
		return nil, fmt.Errorf("not enough history for a %d-day window", windowDays)
	}

	var absPct, sqErr float64
	samples := 0
	for i := len(hist.values) - windowDays; i < len(hist.values); i++ {
		train := hist.values[:i]
		slope, intercept := olsFit(train)
		weekday := weekdayMeans(&series{dates: hist.dates[:i], values: train})

		predicted := predictDay(slope, intercept, i, weekday, hist.dates[i])
		actual := hist.values[i]
		if actual == 0 {
			continue
		}
		absPct += math.Abs(predicted-actual) / actual
		sqErr += (predicted - actual) * (predicted - actual)
		samples++
	}
	if samples == 0 {
		return &Accuracy{}, nil
	}
	return &Accuracy{
		MAPE:    round2(absPct / float64(samples) * 100),
		RMSE:    round2(math.Sqrt(sqErr / float64(samples))),
		Samples: samples,
	}, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		ss += (v - m) * (v - m)
	}
	return math.Sqrt(ss / float64(len(values)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
