package api

import (
	"strings"

	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

// Response represents the top-level Al Adhan timings response.
type Response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   Data   `json:"data"`
}

// Data holds the timings and the parameters the service applied.
type Data struct {
	Timings Timings  `json:"timings"`
	Date    DateInfo `json:"date"`
	Meta    Meta     `json:"meta"`
}

// Timings contains event times as HH:MM strings. The service may append a
// zone suffix such as " (BST)".
type Timings struct {
	Imsak   string `json:"Imsak"`
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Sunset  string `json:"Sunset"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

// Get returns the clean "HH:MM" time of e.
func (t Timings) Get(e prayer.Event) string {
	var v string
	switch e {
	case prayer.Imsak:
		v = t.Imsak
	case prayer.Fajr:
		v = t.Fajr
	case prayer.Sunrise:
		v = t.Sunrise
	case prayer.Dhuhr:
		v = t.Dhuhr
	case prayer.Asr:
		v = t.Asr
	case prayer.Sunset:
		v = t.Sunset
	case prayer.Maghrib:
		v = t.Maghrib
	case prayer.Isha:
		v = t.Isha
	}
	return StripZone(v)
}

// StripZone removes a trailing " (ZONE)" suffix from a time string.
func StripZone(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// DateInfo contains the date the timings are for.
type DateInfo struct {
	Readable  string `json:"readable"`
	Timestamp string `json:"timestamp"`
}

// Meta contains request metadata returned by the service.
type Meta struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Timezone  string     `json:"timezone"`
	Method    MethodInfo `json:"method"`
	School    string     `json:"school"`
}

// MethodInfo identifies the calculation method used.
type MethodInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
