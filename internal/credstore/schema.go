package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/haguru/localauth/internal/models"
)

var (
	errNotAnArray  = errors.New("value is not a JSON array")
	errNotAnObject = errors.New("value is not a JSON object")
	errNullField   = errors.New("field is null")
)

var (
	recordFields = []string{"username", "email", "password", "createdAt"}
	markerFields = []string{"username"}
)

// decodeCollection parses an untyped stored value into records. Every
// element must be an object carrying all four fields as strings; anything
// else rejects the whole value.
func decodeCollection(raw string) (models.UserCollection, error) {
	var untyped interface{}
	if err := json.Unmarshal([]byte(raw), &untyped); err != nil {
		return nil, err
	}

	items, ok := untyped.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: got %T", errNotAnArray, untyped)
	}

	records := make(models.UserCollection, 0, len(items))
	for i, item := range items {
		var rec models.UserRecord
		if err := decodeObject(item, recordFields, &rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeMarker(raw string) (models.CurrentUserMarker, error) {
	var marker models.CurrentUserMarker

	var untyped interface{}
	if err := json.Unmarshal([]byte(raw), &untyped); err != nil {
		return marker, err
	}
	err := decodeObject(untyped, markerFields, &marker)
	return marker, err
}

func decodeObject(item interface{}, required []string, result interface{}) error {
	obj, ok := item.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: got %T", errNotAnObject, item)
	}

	for _, key := range required {
		if v, present := obj[key]; present && v == nil {
			return fmt.Errorf("%w: %s", errNullField, key)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnset:       true,
		WeaklyTypedInput: false,
		TagName:          "mapstructure",
		Result:           result,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(obj)
}

// encodeJSON produces compact JSON without HTML escaping and without the
// trailing newline json.Encoder appends.
func encodeJSON(v interface{}) (string, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}
