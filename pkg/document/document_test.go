package document_test

import (
	"testing"

	"github.com/aretw0/etchmory/pkg/document"
	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/aretw0/etchmory/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Layout(t *testing.T) {
	tr := tree.New[domain.Decision]()
	a := tr.Root().Append(tree.NewNode(domain.NewDecision("a", domain.Number(1))))
	a.Append(tree.NewNode(domain.NewDecision("b", domain.String("x"))))
	a.Append(tree.NewNode(domain.NewDecision("c", domain.Bool(false))))

	data, err := document.Encode(tr)
	require.NoError(t, err)
	assert.Equal(t,
		`{"root":{"value":null,"children":[{"value":{"key":"a","value":1},"children":[`+
			`{"value":{"key":"b","value":"x"},"children":[]},`+
			`{"value":{"key":"c","value":false},"children":[]}]}]}}`,
		string(data))
}

func TestEncode_EmptyTree(t *testing.T) {
	data, err := document.Encode(tree.New[domain.Decision]())
	require.NoError(t, err)
	assert.Equal(t, `{"root":{"value":null,"children":[]}}`, string(data))
}

func TestDecode_RoundTrip(t *testing.T) {
	in := `{"root":{"value":null,"children":[{"value":{"key":"a","value":1},"children":[{"value":{"key":"b","value":"x"},"children":[]}]},{"value":{"key":"a","value":2},"children":[]}]}}`

	tr, err := document.Decode([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Len())

	out, err := document.Encode(tr)
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"root":`},
		{"no root", `{"tree":{}}`},
		{"root with value", `{"root":{"value":{"key":"a","value":1},"children":[]}}`},
		{"child without value", `{"root":{"value":null,"children":[{"value":null,"children":[]}]}}`},
		{"duplicate siblings", `{"root":{"value":null,"children":[{"value":{"key":"a","value":1},"children":[]},{"value":{"key":"a","value":1},"children":[]}]}}`},
		{"bad value type", `{"root":{"value":null,"children":[{"value":{"key":"a","value":[1]},"children":[]}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := document.Decode([]byte(tt.doc))
			assert.ErrorIs(t, err, domain.ErrInvalidDocument)
		})
	}
}
