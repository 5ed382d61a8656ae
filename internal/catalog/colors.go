// Package catalog holds the in-process static color catalog. Colors are
// compiled in rather than fetched; the retailer's palette changes a few
// times a year at most.
package catalog

import "github.com/ferhatural/paint-assistant/pkg/models"

// AllColors is the full color catalog shown by the colors panel and
// serialized into the decision prompt when the query is color-related.
var AllColors = []models.Color{
	{Name: "Kaktüs 90", Code: "rgb(96,145,103)"},
	{Name: "Kaktüs 50", Code: "rgb(190,215,195)"},
	{Name: "Kıvılcım 90", Code: "rgb(217,110,81)"},
	{Name: "Aydan", Code: "rgb(248,247,246)"},
	{Name: "Hasır 40", Code: "rgb(240,232,225)"},
	{Name: "Kozmik 115", Code: "rgb(118,168,197)"},
	{Name: "Kozmik 90", Code: "rgb(55, 93, 117)"},
	{Name: "Kozmik 25", Code: "rgb(181, 206, 222)"},
	{Name: "Andezit 15", Code: "rgb(103, 110, 116)"},
	{Name: "Andezit 35", Code: "rgb(168, 172, 176)"},
	{Name: "Andezit 55", Code: "rgb(205, 208, 210)"},
}

// ColorsOfTheYear is the 2025 seasonal selection featured in the decision
// prompt so the model can recommend it directly.
var ColorsOfTheYear = []string{
	"Kaktüs 90",
	"Kaktüs 50",
	"Kıvılcım 90",
	"Aydan",
	"Hasır 40",
	"Kozmik 115",
}
