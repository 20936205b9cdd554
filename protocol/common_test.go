package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebElementJSONKey(t *testing.T) {
	t.Parallel()

	elem := WebElement{ID: "abc-123"}
	data, err := json.Marshal(elem)
	require.NoError(t, err)
	assert.JSONEq(t, `{"element-6066-11e4-a52e-4f735466cecf":"abc-123"}`, string(data))

	var decoded WebElement
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, elem, decoded)
}

func TestWebElementUnmarshalMissingKey(t *testing.T) {
	t.Parallel()

	var elem WebElement
	err := json.Unmarshal([]byte(`{"wrong-key":"x"}`), &elem)
	require.Error(t, err)
	var werr *Error
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, InvalidArgument, werr.Status)
}

func TestFrameIdRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
		want FrameId
	}{
		{name: "null", json: `null`, want: FrameId{Kind: FrameIdNull}},
		{name: "short", json: `3`, want: FrameId{Kind: FrameIdShort, Short: 3}},
		{
			name: "element",
			json: `{"element-6066-11e4-a52e-4f735466cecf":"e1"}`,
			want: FrameId{Kind: FrameIdElement, Element: WebElement{ID: "e1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got FrameId
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.want, got)

			data, err := json.Marshal(got)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(data))
		})
	}
}

func TestNewSessionParametersGetConsume(t *testing.T) {
	t.Parallel()

	var p NewSessionParameters
	require.NoError(t, json.Unmarshal([]byte(`{
		"desiredCapabilities": {"browserName": "firefox", "shared": "desired"},
		"requiredCapabilities": {"platform": "linux", "shared": "required"}
	}`), &p))

	v, ok := p.Get("shared")
	require.True(t, ok)
	assert.JSONEq(t, `"required"`, string(v))

	v, ok = p.Get("browserName")
	require.True(t, ok)
	assert.JSONEq(t, `"firefox"`, string(v))

	_, ok = p.Get("missing")
	assert.False(t, ok)

	v, ok = p.Consume("shared")
	require.True(t, ok)
	assert.JSONEq(t, `"required"`, string(v))
	_, ok = p.Get("shared")
	assert.False(t, ok, "consume should remove from both maps")
}

func TestNewSessionParametersDefaultsToEmptyMaps(t *testing.T) {
	t.Parallel()

	var p NewSessionParameters
	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
	assert.NotNil(t, p.Desired)
	assert.NotNil(t, p.Required)
	assert.Empty(t, p.Desired)
	assert.Empty(t, p.Required)
}
