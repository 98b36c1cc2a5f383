package scoring

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jstittsworth/ffb-trends/internal/nfl"
)

// TrendSummary condenses a points-by-year series into headline numbers
type TrendSummary struct {
	Player        string  `json:"player"`
	Seasons       int     `json:"seasons"`
	TotalPoints   float64 `json:"total_points"`
	MeanPoints    float64 `json:"mean_points"`
	StdDev        float64 `json:"std_dev"`
	BestYear      int     `json:"best_year"`
	BestPoints    float64 `json:"best_points"`
	PointsPerYear float64 `json:"points_per_year"` // least-squares slope of points on year
}

// Summarize computes descriptive statistics for one player's series.
// Spread and slope need at least two seasons; shorter series report zero
// for both.
func Summarize(player string, series []nfl.YearPoints) TrendSummary {
	s := TrendSummary{Player: player, Seasons: len(series)}
	if len(series) == 0 {
		return s
	}
	years := make([]float64, len(series))
	points := make([]float64, len(series))
	for i, yp := range series {
		years[i] = float64(yp.Year)
		points[i] = yp.Points
		if i == 0 || yp.Points > s.BestPoints {
			s.BestYear, s.BestPoints = yp.Year, yp.Points
		}
	}
	s.TotalPoints = floats.Sum(points)
	s.MeanPoints = stat.Mean(points, nil)
	if len(series) > 1 {
		s.StdDev = stat.StdDev(points, nil)
		_, s.PointsPerYear = stat.LinearRegression(years, points, nil, false)
	}
	return s
}
