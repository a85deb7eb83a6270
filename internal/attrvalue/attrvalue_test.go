package attrvalue_test

import (
	"encoding/json"
	"testing"

	"github.com/nardo/usecase-tracker/internal/attrvalue"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		value attrvalue.Value

		want string
	}{
		"String":       {value: attrvalue.S("Rolling Mean"), want: `{"S":"Rolling Mean"}`},
		"Empty string": {value: attrvalue.S(""), want: `{"S":""}`},
		"Number":       {value: attrvalue.N(1693526400000), want: `{"N":"1693526400000"}`},
		"Negative":     {value: attrvalue.N(-3), want: `{"N":"-3"}`},
		"String list": {
			value: attrvalue.Strings([]string{"TAG-12345", "TAG-67891"}),
			want:  `{"L":[{"S":"TAG-12345"},{"S":"TAG-67891"}]}`,
		},
		"Nested list": {
			value: attrvalue.L(attrvalue.N(1), attrvalue.L(attrvalue.S("a"))),
			want:  `{"L":[{"N":"1"},{"L":[{"S":"a"}]}]}`,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := json.Marshal(tc.value)
			require.NoError(t, err, "Marshal should not return an error")
			require.JSONEq(t, tc.want, string(got), "Marshal should produce the typed-attribute shape")
		})
	}
}

func TestItemAccessors(t *testing.T) {
	t.Parallel()

	var it attrvalue.Item
	err := json.Unmarshal([]byte(`{
		"requestID": {"S": "7"},
		"creationDate": {"N": "1700000000000"},
		"analysisTypes": {"L": [{"S": "Autocorrelation"}, {"S": "Rolling Mean"}]},
		"badNumber": {"N": "12x"},
		"mixedList": {"L": [{"S": "a"}, {"N": "1"}]}
	}`), &it)
	require.NoError(t, err, "Setup: failed to unmarshal item")

	s, err := it.String("requestID")
	require.NoError(t, err)
	require.Equal(t, "7", s)

	n, err := it.Int("creationDate")
	require.NoError(t, err)
	require.Equal(t, int64(1700000000000), n)

	l, err := it.StringList("analysisTypes")
	require.NoError(t, err)
	require.Equal(t, []string{"Autocorrelation", "Rolling Mean"}, l)

	_, err = it.String("missing")
	require.ErrorIs(t, err, attrvalue.ErrMissing, "missing attribute should be reported")

	_, err = it.String("creationDate")
	require.ErrorIs(t, err, attrvalue.ErrWrongType, "a number is not a string")

	_, err = it.Int("requestID")
	require.ErrorIs(t, err, attrvalue.ErrWrongType, "a string is not a number")

	_, err = it.Int("badNumber")
	require.Error(t, err, "an unparsable number should be reported")

	_, err = it.StringList("requestID")
	require.ErrorIs(t, err, attrvalue.ErrWrongType, "a string is not a list")

	_, err = it.StringList("mixedList")
	require.ErrorIs(t, err, attrvalue.ErrWrongType, "a list holding a number is not a string list")
}
