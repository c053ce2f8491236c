package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

var (
	// ErrMissingField is returned when a required field is absent or null.
	ErrMissingField = errors.New("missing required field")
	// ErrMissingDiscriminant is returned when a tagged object has no tag.
	ErrMissingDiscriminant = errors.New("missing discriminant")
	// ErrAmbiguousUpdate is returned when an update carries more than one
	// known content field.
	ErrAmbiguousUpdate = errors.New("ambiguous update")
	// ErrEmptyUpdate is returned when an update carries nothing but its id.
	ErrEmptyUpdate = errors.New("update has no content")
)

func missingField(entity, field string) error {
	return fmt.Errorf("decode %s: %w %q", entity, ErrMissingField, field)
}

// objectKeys returns the members of a JSON object, skipping those whose value
// is null.
func objectKeys(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		if string(v) == "null" {
			delete(fields, k)
		}
	}
	return fields, nil
}

func requireKeys(entity string, fields map[string]json.RawMessage, keys ...string) error {
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			return missingField(entity, k)
		}
	}
	return nil
}

// jsonKeys lists the json member names declared by the struct type of v.
func jsonKeys(v any) map[string]struct{} {
	t := reflect.TypeOf(v)
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = struct{}{}
		}
	}
	return keys
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
