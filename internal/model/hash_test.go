package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHash(t *testing.T) {
	valid := strings.Repeat("ab", HashSize)

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "valid", in: valid},
		{name: "too short", in: "abcd", wantErr: true},
		{name: "too long", in: valid + "00", wantErr: true},
		{name: "not hex", in: strings.Repeat("zz", HashSize), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHash(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHash)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, h.String())
		})
	}
}

func TestHash_JSON(t *testing.T) {
	var h Hash
	h[0], h[31] = 0x01, 0xff

	b, err := json.Marshal(struct {
		H Hash `json:"h"`
	}{H: h})
	require.NoError(t, err)
	assert.JSONEq(t, `{"h":"01000000000000000000000000000000000000000000000000000000000000ff"}`, string(b))

	var out struct {
		H Hash `json:"h"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, h, out.H)

	assert.Error(t, json.Unmarshal([]byte(`{"h":"nope"}`), &out))
}
