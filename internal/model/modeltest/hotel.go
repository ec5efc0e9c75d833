// Package modeltest provides ready-made charts for tests.
package modeltest

import (
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/scoring"
)

// HotelChartID is the fixed ID of HotelChart.
var HotelChartID = uuid.MustParse("6f1d2c3a-9b8e-4f7a-a1b2-c3d4e5f60718")

// HotelObjectives returns the hotel objective forest:
//
//	hotel
//	├── location: area, skytrain-distance
//	├── room: size, internet-access
//	└── rate
func HotelObjectives() []*model.Objective {
	return []*model.Objective{
		model.NewAbstract("hotel",
			model.NewAbstract("location",
				model.NewPrimitive("area", "#1f77b4", &model.Domain{
					Type:     model.DomainCategorical,
					Elements: []string{"nightlife", "airport", "beach"},
				}),
				model.NewPrimitive("skytrain-distance", "#ff7f0e", &model.Domain{
					Type: model.DomainInterval, Min: 1, Max: 9, Interval: 1, Unit: "blocks",
				}),
			),
			model.NewAbstract("room",
				model.NewPrimitive("size", "#2ca02c", &model.Domain{
					Type: model.DomainContinuous, Min: 200, Max: 350, Unit: "sq-ft",
				}),
				model.NewPrimitive("internet-access", "#d62728", &model.Domain{
					Type:     model.DomainCategorical,
					Elements: []string{"none", "lowspeed", "highspeed"},
				}),
			),
			model.NewPrimitive("rate", "#9467bd", &model.Domain{
				Type: model.DomainContinuous, Min: 100, Max: 200, Unit: "CAD",
			}),
		),
	}
}

type hotelRow struct {
	name     string
	area     string
	skytrain float64
	size     float64
	internet string
	rate     float64
}

var hotels = []hotelRow{
	{"Sheraton", "nightlife", 7, 350, "highspeed", 150},
	{"BestWestern", "nightlife", 2, 200, "lowspeed", 100},
	{"Hyatt", "beach", 2, 275, "lowspeed", 200},
	{"Marriott", "airport", 9, 200, "lowspeed", 160},
	{"HolidayInn", "airport", 1, 237.5, "none", 100},
	{"Ramada", "beach", 1, 275, "highspeed", 120},
}

// HotelAlternatives returns the six hotel alternatives in load order.
func HotelAlternatives() []*model.Alternative {
	out := make([]*model.Alternative, 0, len(hotels))
	for _, h := range hotels {
		a := model.NewAlternative(h.name, "")
		a.SetValue("area", scoring.Text(h.area))
		a.SetValue("skytrain-distance", scoring.Number(h.skytrain))
		a.SetValue("size", scoring.Number(h.size))
		a.SetValue("internet-access", scoring.Text(h.internet))
		a.SetValue("rate", scoring.Number(h.rate))
		out = append(out, a)
	}
	return out
}

// HotelUser returns a user with the given weights and hand-tuned score functions.
func HotelUser(name, color string, weights map[string]float64) *model.User {
	u := model.NewUser(name, color)
	for objective, w := range weights {
		_ = u.Weights.Set(objective, w)
	}

	area := scoring.NewDiscreteScoreFunction()
	_ = area.SetScore(scoring.Text("nightlife"), 0.25)
	_ = area.SetScore(scoring.Text("airport"), 0)
	_ = area.SetScore(scoring.Text("beach"), 1)
	u.ScoreFunctions.Set("area", area)

	skytrain := scoring.NewDiscreteScoreFunction()
	for i := 1; i <= 9; i++ {
		_ = skytrain.SetScore(scoring.Number(float64(i)), float64(9-i)/8)
	}
	u.ScoreFunctions.Set("skytrain-distance", skytrain)

	size := scoring.NewContinuousScoreFunction(200, 350)
	_ = size.SetScore(scoring.Number(200), 0)
	_ = size.SetScore(scoring.Number(237.5), 0.25)
	_ = size.SetScore(scoring.Number(275), 0.5)
	_ = size.SetScore(scoring.Number(350), 1)
	u.ScoreFunctions.Set("size", size)

	internet := scoring.NewDiscreteScoreFunction()
	_ = internet.SetScore(scoring.Text("none"), 0)
	_ = internet.SetScore(scoring.Text("lowspeed"), 0.5)
	_ = internet.SetScore(scoring.Text("highspeed"), 1)
	u.ScoreFunctions.Set("internet-access", internet)

	rate := scoring.NewContinuousScoreFunction(100, 200)
	_ = rate.SetScore(scoring.Number(100), 1)
	_ = rate.SetScore(scoring.Number(200), 0)
	u.ScoreFunctions.Set("rate", rate)

	return u
}

// AaronWeights and BobWeights are the two reference users' weight maps.
var (
	AaronWeights = map[string]float64{
		"area": 0.2, "skytrain-distance": 0.1, "size": 0.1, "internet-access": 0.2, "rate": 0.4,
	}
	BobWeights = map[string]float64{
		"area": 0.05, "skytrain-distance": 0.3, "size": 0.3, "internet-access": 0.05, "rate": 0.3,
	}
)

// HotelChart returns a validated hotel chart with the named users
// ("Aaron", "Bob"); pass none for a structure-only chart.
func HotelChart(users ...string) *model.ValueChart {
	c := &model.ValueChart{
		ID:           HotelChartID,
		Name:         "Hotel",
		Description:  "Where to stay in Vancouver",
		Creator:      "Aaron",
		Objectives:   HotelObjectives(),
		Alternatives: HotelAlternatives(),
	}
	for _, name := range users {
		switch name {
		case "Aaron":
			c.PutUser(HotelUser("Aaron", "#0000ff", AaronWeights))
		case "Bob":
			c.PutUser(HotelUser("Bob", "#ff0000", BobWeights))
		}
	}
	return c
}
