package domain

import (
	"fmt"
	"sort"
)

// TopicDescriptor is a named, ordered list of representative terms.
type TopicDescriptor struct {
	Name  string
	Terms []string
}

// TopicTerms is an ordered set of topic descriptors.
// Order matters: classification evaluates topics in this order and the
// lexical fallback keeps the first topic on equal scores.
type TopicTerms []TopicDescriptor

// DiscoveredTopicName returns the name assigned to the i-th discovered cluster.
func DiscoveredTopicName(i int) string {
	return fmt.Sprintf("topic_%d", i)
}

// Names returns the topic names in order.
func (t TopicTerms) Names() []string {
	names := make([]string, len(t))
	for i := range t {
		names[i] = t[i].Name
	}
	return names
}

// Lookup returns the descriptor with the given name.
func (t TopicTerms) Lookup(name string) (TopicDescriptor, bool) {
	for i := range t {
		if t[i].Name == name {
			return t[i], true
		}
	}
	return TopicDescriptor{}, false
}

// TopicTermsFromMap converts an unordered mapping into TopicTerms sorted by name.
// Callers that need file order should decode into TopicTerms directly.
func TopicTermsFromMap(m map[string][]string) TopicTerms {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make(TopicTerms, 0, len(names))
	for _, name := range names {
		out = append(out, TopicDescriptor{Name: name, Terms: m[name]})
	}
	return out
}

// Clone returns a deep copy of the topics.
func (t TopicTerms) Clone() TopicTerms {
	if t == nil {
		return nil
	}
	out := make(TopicTerms, len(t))
	for i := range t {
		out[i] = TopicDescriptor{Name: t[i].Name, Terms: append([]string(nil), t[i].Terms...)}
	}
	return out
}

// Map returns the topics as a name->terms mapping.
func (t TopicTerms) Map() map[string][]string {
	m := make(map[string][]string, len(t))
	for i := range t {
		m[t[i].Name] = t[i].Terms
	}
	return m
}
