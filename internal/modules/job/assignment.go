package job

import (
	"encoding/json"
	"strings"

	"jobtrack/internal/domain"
)

// Assignment resolver: pure list edits over the normalized engineers field.
// The persisted form is always the list; the legacy scalar column is nulled
// on the first write through here and never written again.

func addEngineer(engineers []string, email string) ([]string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrValidation
	}
	for _, e := range engineers {
		if e == email {
			return engineers, nil // already assigned
		}
	}
	if len(engineers) >= domain.MaxEngineers {
		return nil, ErrEngineerLimit
	}
	out := make([]string, len(engineers), len(engineers)+1)
	copy(out, engineers)
	return append(out, email), nil
}

// removeEngineer never fails on the last entry: an unassigned job is valid.
func removeEngineer(engineers []string, index int) ([]string, error) {
	if index < 0 || index >= len(engineers) {
		return nil, ErrValidation
	}
	out := make([]string, 0, len(engineers)-1)
	out = append(out, engineers[:index]...)
	return append(out, engineers[index+1:]...), nil
}

func setEngineer(engineers []string, index int, email string) ([]string, error) {
	email = strings.TrimSpace(email)
	if email == "" || index < 0 || index >= len(engineers) {
		return nil, ErrValidation
	}
	out := make([]string, len(engineers))
	copy(out, engineers)
	out[index] = email
	return out, nil
}

// engineersUpdate builds the partial update that persists the list form and
// retires the legacy scalar column.
func engineersUpdate(engineers []string) (map[string]any, error) {
	enc, err := json.Marshal(engineers)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"engineers": string(enc),
		"engineer":  nil,
	}, nil
}
