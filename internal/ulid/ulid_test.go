package ulid

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id := Generate()
	assert.False(t, id.IsZero())
	assert.Empty(t, id.Prefix())
	assert.Len(t, id.String(), 26)
}

func TestGenerateWithPrefix(t *testing.T) {
	id := GenerateWithPrefix(PrefixCycle)
	assert.Equal(t, PrefixCycle, id.Prefix())
	assert.True(t, strings.HasPrefix(id.String(), "cyc-"))
}

func TestDomainHelpers(t *testing.T) {
	cases := []struct {
		name   string
		gen    func() string
		prefix string
	}{
		{"cycle", CycleID, "cyc-"},
		{"ticket", TicketID, "tick-"},
		{"review", ReviewID, "rev-"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := tc.gen()
			assert.True(t, strings.HasPrefix(id, tc.prefix))
			assert.True(t, Validate(id))
		})
	}
}

func TestParse(t *testing.T) {
	original := GenerateWithPrefix(PrefixReview)

	parsed, err := Parse(original.String())
	require.NoError(t, err)
	assert.Equal(t, PrefixReview, parsed.Prefix())
	assert.Equal(t, original.String(), parsed.String())

	_, err = Parse("not-a-ulid")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate(Generate().String()))
	assert.True(t, Validate(CycleID()))
	assert.False(t, Validate("garbage"))
	assert.False(t, Validate(""))
}

func TestCompareOrdersByTime(t *testing.T) {
	earlier := NewWithTime(time.Now())
	later := NewWithTime(time.Now().Add(time.Second))

	assert.Equal(t, -1, earlier.Compare(later))
	assert.Equal(t, 1, later.Compare(earlier))
	assert.Equal(t, 0, earlier.Compare(earlier))
}

func TestTimeComponent(t *testing.T) {
	at := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)
	id := NewWithTime(at)
	assert.WithinDuration(t, at, id.Time(), time.Millisecond)
}

func TestJSONRoundTrip(t *testing.T) {
	original := GenerateWithPrefix(PrefixCycle)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.JSONEq(t, `"`+original.String()+`"`, string(data))

	var decoded ULID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original.String(), decoded.String())
	assert.Equal(t, PrefixCycle, decoded.Prefix())
}
