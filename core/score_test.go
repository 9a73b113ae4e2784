package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_JSON(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Score
		wantOut string
		wantErr bool
	}{
		{name: "string", data: `"45"`, want: 45, wantOut: `"45.00"`},
		{name: "number", data: `91.5`, want: 91.5, wantOut: `"91.50"`},
		{name: "rounded", data: `"80.456"`, want: 80.46, wantOut: `"80.46"`},
		{name: "zero", data: `0`, want: 0, wantOut: `"0.00"`},
		{name: "negative delta", data: `"-12.346"`, want: -12.35, wantOut: `"-12.35"`},
		{name: "garbage", data: `"lol"`, wantErr: true},
		{name: "bool", data: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Score
			err := json.Unmarshal([]byte(tt.data), &s)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, s)

			out, err := json.Marshal(s)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantOut, string(out))
		})
	}
}

func TestScore_null(t *testing.T) {
	var payload struct {
		Score *Score `json:"score"`
	}
	assert.NoError(t, json.Unmarshal([]byte(`{"score": null}`), &payload))
	assert.Nil(t, payload.Score)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 68.0, Round(68.0, 1))
	assert.Equal(t, 69.5, Round(69.45, 1))
	assert.Equal(t, 1.0, Round(0.996, 2))
	assert.Equal(t, -2.0, Round(-1.5, 0))
}
