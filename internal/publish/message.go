package publish

import (
	"time"

	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

// ScheduleMessage is the payload of Topics.Schedule. When the day could not
// be computed, Error is set and Times is empty.
type ScheduleMessage struct {
	Date     string           `json:"date"`
	Label    string           `json:"label,omitempty"`
	Method   string           `json:"method"`
	Asr      string           `json:"asr"`
	Timezone string           `json:"timezone"`
	Times    *prayer.Schedule `json:"times,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// NextMessage is the payload of Topics.Next.
type NextMessage struct {
	Prayer    string    `json:"prayer"`
	Time      time.Time `json:"time"`
	Remaining string    `json:"remaining"`
	Status    string    `json:"status"`
}

type statusMessage struct {
	Status    string `json:"status"`
	ClientID  string `json:"client_id"`
	Timestamp string `json:"timestamp"`
}
