package decode

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/mmcdole/marquee/internal/domain"
)

// DecodeRated decodes TMDB's "rated" field, which arrives either as a
// boolean or as an object {"value": N}. The boolean form is tried first.
// null or empty input means not rated.
func DecodeRated(data []byte) (domain.RatedStatus, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return domain.NotRated, nil
	}

	var flag bool
	if err := json.Unmarshal(trimmed, &flag); err == nil {
		if !flag {
			return domain.NotRated, nil
		}
		// true without a value: rated, rating unknown
		return domain.RatedStatus{IsRated: true, Rating: domain.NoRating}, nil
	}

	var obj struct {
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return domain.NotRated, malformed("rated", string(trimmed), err)
	}
	if obj.Value == nil {
		return domain.NotRated, malformed("rated", string(trimmed), errors.New("rated object has no value"))
	}
	return domain.RatedStatus{IsRated: true, Rating: *obj.Value}, nil
}

// RatedField is a struct field type for "rated" that decodes through DecodeRated
type RatedField struct {
	status domain.RatedStatus
	set    bool
}

// UnmarshalJSON implements json.Unmarshaler
func (f *RatedField) UnmarshalJSON(data []byte) error {
	status, err := DecodeRated(data)
	if err != nil {
		return err
	}
	f.status = status
	f.set = true
	return nil
}

// Status returns the decoded status; an absent field reports not rated
func (f RatedField) Status() domain.RatedStatus {
	if !f.set {
		return domain.NotRated
	}
	return f.status
}
