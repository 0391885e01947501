package domain

import (
	"encoding/json"
	"fmt"
)

func oneOf[T comparable](v T, allowed []T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func unmarshalEnum[T ~string](data []byte, dst *T, allowed []T, kind string) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s must be a string", kind)
	}
	v := T(raw)
	if !oneOf(v, allowed) {
		return fmt.Errorf("unknown %s %q", kind, raw)
	}
	*dst = v
	return nil
}
