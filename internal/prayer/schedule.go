package prayer

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Schedule holds the formatted time of every event, indexed by Event.
// It marshals to JSON and YAML as an ordered mapping keyed by Event.Key.
type Schedule [NumEvents]string

// Get returns the formatted time of e.
func (s Schedule) Get(e Event) string {
	return s[e]
}

// Map returns the schedule as a lowercase-keyed map.
func (s Schedule) Map() map[string]string {
	m := make(map[string]string, NumEvents)
	for _, e := range Events {
		m[e.Key()] = s[e]
	}
	return m
}

func (s Schedule) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range Events {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(e.Key())
		v, err := json.Marshal(s[e])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s Schedule) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range Events {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key()},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s[e], Style: yaml.DoubleQuotedStyle},
		)
	}
	return node, nil
}
