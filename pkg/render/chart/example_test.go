package chart_test

import (
	"fmt"

	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/render/chart"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
)

func ExampleLine() {
	ds := dataset.Dataset{
		{"month": "Jan", "sales": 5},
		{"month": "Feb", "sales": 20},
		{"month": "Mar", "sales": 10},
	}

	cfg := chart.LineDefaults(900)
	cfg.Margin = 50
	cfg.Line.Curve = false
	cfg.YFormatter = func(v string) string { return "$" + v }

	c := chart.Line(ds, dataset.Keys{XKey: "month", YKey: "sales"}, cfg)

	fmt.Println(c.Path)
	for _, p := range c.Model.Layer(model.LayerYLabels) {
		fmt.Println(p.Text.Content)
	}
	// Output:
	// M50,200 L450,50 L850,150
	// $0
	// $10
	// $20
}

func ExampleLineChart_Press() {
	ds := dataset.Dataset{
		{"day": "Mon", "visits": 120},
		{"day": "Tue", "visits": 95},
	}

	cfg := chart.LineDefaults(400)
	cfg.OnPointPress = func(i int, r dataset.Record) {
		fmt.Printf("pressed %d: %v\n", i, r["day"])
	}

	c := chart.Line(ds, dataset.Keys{XKey: "day", YKey: "visits"}, cfg)
	c.Press(1)
	// Output:
	// pressed 1: Tue
}

func ExampleBar() {
	ds := dataset.Dataset{
		{"team": "A", "score": 3},
		{"team": "B", "score": 6},
	}

	c := chart.Bar(ds, dataset.Keys{XKey: "team", YKey: "score"}, chart.BarDefaults(500))
	for _, b := range c.Bars {
		fmt.Printf("%s center=%.0f height=%.0f\n", ds[b.Index]["team"], b.CenterX, b.Height)
	}
	// Output:
	// A center=150 height=100
	// B center=350 height=200
}
