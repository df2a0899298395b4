package rules

import "strings"

// LegendItem describes a code for display and export
type LegendItem struct {
	Code        string
	Description string
	// Color is an RGB hex fill used by renderers
	Color string
}

// Legend lists every code the planner knows about
var Legend = []LegendItem{
	{Code: "D", Description: "Rest", Color: "#E5E7EB"},
	{Code: "V", Description: "Requested vacation", Color: "#BFDBFE"},
	{Code: "VA", Description: "Vacation (prior year)", Color: "#BFDBFE"},
	{Code: "P", Description: "Permission", Color: "#E9D5FF"},
	{Code: "B", Description: "Leave (09:00-21:00)", Color: "#FCA5A5"},
	{Code: "JF", Description: "Flexible day", Color: "#BBF7D0"},
	{Code: "M", Description: "Full morning", Color: "#FEF08A"},
	{Code: "MP", Description: "7h morning", Color: "#FDE047"},
	{Code: "MS", Description: "Weekdays plus Saturday", Color: "#2DD4BF"},
	{Code: "FN", Description: "National holiday", Color: "#FDBA74"},
	{Code: "FL", Description: "Local holiday", Color: "#FED7AA"},
	{Code: "FA", Description: "Regional holiday", Color: "#FB923C"},
	{Code: "T", Description: "Afternoon", Color: "#C7D2FE"},
	{Code: "TD", Description: "Afternoon with Saturdays", Color: "#A5B4FC"},
	{Code: "F", Description: "Training", Color: "#FBCFE8"},
	{Code: "MF", Description: "Morning training", Color: "#FBCFE8"},
	{Code: "TF", Description: "Afternoon training", Color: "#FBCFE8"},
	{Code: "TC", Description: "Contingency shift", Color: "#A5F3FC"},
	{Code: "TDE", Description: "Late afternoon shift", Color: "#D9F99D"},
}

// LookupLegend finds the legend entry for a code (case-insensitive)
func LookupLegend(code string) (LegendItem, bool) {
	for _, item := range Legend {
		if strings.EqualFold(item.Code, code) {
			return item, true
		}
	}
	return LegendItem{}, false
}
