package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/custodia-labs/kgtool/internal/core/domain"
)

// EncodeTopics writes topics as one JSON object in topic order, indented by
// two spaces.
func EncodeTopics(w io.Writer, topics domain.TopicTerms) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, t := range topics {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		if err := writeJSON(&buf, t.Name); err != nil {
			return err
		}
		buf.WriteString(": ")
		if err := writeTerms(&buf, t.Terms); err != nil {
			return err
		}
	}
	if len(topics) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func writeTerms(buf *bytes.Buffer, terms []string) error {
	if len(terms) == 0 {
		buf.WriteString("[]")
		return nil
	}
	buf.WriteString("[")
	for i, term := range terms {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n    ")
		if err := writeJSON(buf, term); err != nil {
			return err
		}
	}
	buf.WriteString("\n  ]")
	return nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// DecodeTopics reads a JSON object of topic name to term list, keeping the
// object's key order. Duplicate names keep the first position and the last
// term list.
func DecodeTopics(r io.Reader) (domain.TopicTerms, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: reading topics: %v", domain.ErrInvalidInput, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: topics must be a JSON object", domain.ErrInvalidInput)
	}

	var topics domain.TopicTerms
	position := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: reading topics: %v", domain.ErrInvalidInput, err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", domain.ErrInvalidInput, tok)
		}

		var terms []string
		if err := dec.Decode(&terms); err != nil {
			return nil, fmt.Errorf("%w: topic %q must map to a list of strings: %v", domain.ErrInvalidInput, name, err)
		}
		if terms == nil {
			terms = []string{}
		}

		if i, dup := position[name]; dup {
			topics[i].Terms = terms
			continue
		}
		position[name] = len(topics)
		topics = append(topics, domain.TopicDescriptor{Name: name, Terms: terms})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: reading topics: %v", domain.ErrInvalidInput, err)
	}
	if topics == nil {
		topics = domain.TopicTerms{}
	}
	return topics, nil
}
