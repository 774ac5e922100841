package truthtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePreservesColumnOrder(t *testing.T) {
	body := []byte(`{"q":[true,false],"p":[true,true],"output":[true,false]}`)

	resp, err := Decode(body)
	require.NoError(t, err)

	names := make([]string, 0, len(resp.Columns))
	for _, c := range resp.Columns {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"q", "p", "output"}, names)

	q, ok := resp.Column("q")
	require.True(t, ok)
	assert.Equal(t, []any{true, false}, q.Values)
}

func TestDecodeKeepsScalarTypes(t *testing.T) {
	resp, err := Decode([]byte(`{"a":[1,0,null,"x"],"output":[true,false,true,false]}`))
	require.NoError(t, err)

	a, ok := resp.Column("a")
	require.True(t, ok)
	assert.Equal(t, []any{float64(1), float64(0), nil, "x"}, a.Values)
}

func TestDecodeEmptyArray(t *testing.T) {
	resp, err := Decode([]byte(`{"output":[]}`))
	require.NoError(t, err)

	out, ok := resp.Column(OutputKey)
	require.True(t, ok)
	assert.NotNil(t, out.Values)
	assert.Empty(t, out.Values)
}

func TestDecodeRejectsMalformedBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"output":[true`},
		{name: "not an object", body: `[true,false]`},
		{name: "string body", body: `"{\"output\":[true]}"`},
		{name: "column not array", body: `{"p":true,"output":[true]}`},
		{name: "duplicate column", body: `{"p":[true],"p":[false],"output":[true]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}
