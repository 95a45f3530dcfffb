package geodata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// columnOrder walks the raw GeoJSON text and records property keys in the
// order they first appear across the features array. The decoded feature
// collection stores properties in Go maps, which do not preserve source
// order, so the order has to be captured from the text itself.
func columnOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var columns []string
	seen := make(map[string]bool)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		if key != "features" {
			if err := skipValue(dec); err != nil {
				return nil, err
			}
			continue
		}

		if tok, err = dec.Token(); err != nil {
			return nil, err
		}
		if tok == nil {
			continue // "features": null
		}
		if tok != json.Delim('[') {
			return nil, fmt.Errorf("expected features array, got %v", tok)
		}
		for dec.More() {
			if err := featureColumns(dec, &columns, seen); err != nil {
				return nil, err
			}
		}
		if _, err := dec.Token(); err != nil { // closing ']'
			return nil, err
		}
	}

	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if c == GeometryColumn {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// featureColumns consumes one feature object, appending unseen property keys.
func featureColumns(dec *json.Decoder, columns *[]string, seen map[string]bool) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("expected feature object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		if key != "properties" {
			if err := skipValue(dec); err != nil {
				return err
			}
			continue
		}

		if tok, err = dec.Token(); err != nil {
			return err
		}
		if tok == nil {
			continue // "properties": null
		}
		if tok != json.Delim('{') {
			return fmt.Errorf("expected properties object, got %v", tok)
		}
		for dec.More() {
			propTok, err := dec.Token()
			if err != nil {
				return err
			}
			prop, _ := propTok.(string)
			if !seen[prop] {
				seen[prop] = true
				*columns = append(*columns, prop)
			}
			if err := skipValue(dec); err != nil {
				return err
			}
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return err
		}
	}

	_, err = dec.Token() // closing '}'
	return err
}

// skipValue consumes exactly one JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil // scalar
	}

	depth := 1
	for depth > 0 {
		tok, err = dec.Token()
		if err != nil {
			if err == io.EOF {
				return fmt.Errorf("unexpected end of json")
			}
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
