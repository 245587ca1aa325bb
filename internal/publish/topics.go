package publish

import "strings"

// DefaultTopic is the base topic when none is configured.
const DefaultTopic = "prayer-calc"

// Topics builds topic names under a base.
type Topics struct {
	Base string
}

func (t Topics) base() string {
	b := strings.TrimRight(t.Base, "/")
	if b == "" {
		return DefaultTopic
	}
	return b
}

// Schedule is the retained topic carrying today's full schedule.
func (t Topics) Schedule() string { return t.base() + "/schedule" }

// Next is the retained topic carrying the upcoming prayer.
func (t Topics) Next() string { return t.base() + "/next" }

// Status is the online/offline topic, also used as the last will.
func (t Topics) Status() string { return t.base() + "/status" }

func validTopic(topic string) bool {
	return topic != "" && !strings.ContainsAny(topic, "+#")
}
