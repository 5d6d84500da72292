package synth

import "fmt"

// cityCenter is a known city-center coordinate.
type cityCenter struct {
	Lat float64
	Lng float64
}

// defaultCenter anchors heatmaps for cities missing from the table
// (geographic center of the contiguous US).
var defaultCenter = cityCenter{Lat: 39.8283, Lng: -98.5795}

// cityCenters maps "City, ST" to a known center coordinate.
var cityCenters = map[string]cityCenter{
	"Atlanta, GA":       {33.7490, -84.3880},
	"Austin, TX":        {30.2672, -97.7431},
	"Boise, ID":         {43.6150, -116.2023},
	"Charlotte, NC":     {35.2271, -80.8431},
	"Chicago, IL":       {41.8781, -87.6298},
	"Cleveland, OH":     {41.4993, -81.6944},
	"Columbus, OH":      {39.9612, -82.9988},
	"Dallas, TX":        {32.7767, -96.7970},
	"Denver, CO":        {39.7392, -104.9903},
	"Detroit, MI":       {42.3314, -83.0458},
	"Fort Worth, TX":    {32.7555, -97.3308},
	"Houston, TX":       {29.7604, -95.3698},
	"Indianapolis, IN":  {39.7684, -86.1581},
	"Jacksonville, FL":  {30.3322, -81.6557},
	"Kansas City, MO":   {39.0997, -94.5786},
	"Las Vegas, NV":     {36.1699, -115.1398},
	"Memphis, TN":       {35.1495, -90.0490},
	"Miami, FL":         {25.7617, -80.1918},
	"Nashville, TN":     {36.1627, -86.7816},
	"Oklahoma City, OK": {35.4676, -97.5164},
	"Orlando, FL":       {28.5383, -81.3792},
	"Phoenix, AZ":       {33.4484, -112.0740},
	"Pittsburgh, PA":    {40.4406, -79.9959},
	"San Antonio, TX":   {29.4241, -98.4936},
	"St. Louis, MO":     {38.6270, -90.1994},
	"Tampa, FL":         {27.9506, -82.4572},
	"Tucson, AZ":        {32.2226, -110.9747},
}

// centerFor returns the known center for the city or the default.
func centerFor(city, state string) cityCenter {
	if c, ok := cityCenters[fmt.Sprintf("%s, %s", city, state)]; ok {
		return c
	}
	return defaultCenter
}
