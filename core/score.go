package core

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Score is a percentage kept at a fixed precision of 2 decimal places.
// It is encoded as a JSON string ("45.00") and decoded from either a string or a number.
type Score float64

func NewScore(f float64) Score {
	return Score(Round(f, 2))
}

func (s Score) Float64() float64 { return float64(s) }

func (s Score) String() string {
	return strconv.FormatFloat(Round(float64(s), 2), 'f', 2, 64)
}

func (s Score) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		data = []byte(str)
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return errors.Errorf("invalid score %q", string(data))
	}
	*s = NewScore(f)
	return nil
}

// Round rounds f half away from zero to the given number of decimal places.
func Round(f float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(f*pow) / pow
}
