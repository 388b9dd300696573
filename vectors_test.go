package abicoder

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type encodingVector struct {
	Name      string   `yaml:"name"`
	Signature string   `yaml:"signature"`
	Selector  string   `yaml:"selector"`
	Optimize  bool     `yaml:"optimize"`
	Value     any      `yaml:"value"`
	Words     []string `yaml:"words"`
}

func (v encodingVector) calldata(t *testing.T) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString(v.Selector)
	if v.Selector == "" {
		sb.WriteString("0x")
	}
	for _, w := range v.Words {
		switch {
		case strings.HasPrefix(w, "l:"):
			sb.WriteString(leftWord(w[2:]))
		case strings.HasPrefix(w, "r:"):
			sb.WriteString(rightWord(w[2:]))
		default:
			t.Fatalf("vector %q: malformed word %q", v.Name, w)
		}
	}
	return sb.String()
}

func loadVectors(t *testing.T) []encodingVector {
	t.Helper()
	data, err := os.ReadFile("testdata/vectors.yaml")
	require.NoError(t, err)

	var vectors []encodingVector
	require.NoError(t, yaml.Unmarshal(data, &vectors))
	require.NotEmpty(t, vectors)
	return vectors
}

func TestEncodingVectors(t *testing.T) {
	for _, v := range loadVectors(t) {
		t.Run(v.Name, func(t *testing.T) {
			dt, err := ParseDataType(v.Signature)
			require.NoError(t, err)

			opts := []EncodeOption{WithOptimize(v.Optimize), WithEncodeLogger(quietRules().Logger())}
			var decodeOpts []DecodeOption
			if v.Selector != "" {
				opts = append(opts, WithSelector(v.Selector))
				decodeOpts = append(decodeOpts, WithExpectedSelector(v.Selector))
			}

			want := v.calldata(t)
			got, err := Encode(dt, v.Value, opts...)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			decoded, err := Decode(dt, got, append(decodeOpts, WithStrictMode(true))...)
			require.NoError(t, err)

			again, err := Encode(dt, decoded, opts...)
			require.NoError(t, err)
			assert.Equal(t, want, again)
		})
	}
}
