package audit_test

import (
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/econsim/internal/audit"
)

func TestFormat_LineShape(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 7, 9, 123456000, time.Local)
	line := audit.Format(audit.Entry{
		Timestamp: ts,
		Action:    "Tax Adjustment",
		Value:     2,
		Impact:    "GDP: 1020.00, Public Debt: 490.00",
	})

	assert.Equal(t,
		"2024-03-05 14:07:09.123456: Action: Tax Adjustment, Value: 2, Impact: GDP: 1020.00, Public Debt: 490.00\n",
		line)
}

func TestParse_RoundTrip(t *testing.T) {
	want := audit.Entry{
		Timestamp: time.Date(2025, 12, 31, 23, 59, 59, 999999000, time.Local),
		Action:    "Time Advancement",
		Value:     -3,
		Impact:    "Date: 2025-12-31, GDP: 1040.00, Public Debt: 530.00",
	}

	got, err := audit.Parse(audit.Format(want))
	require.NoError(t, err)

	assert.True(t, want.Timestamp.Equal(got.Timestamp), "timestamp %v != %v", want.Timestamp, got.Timestamp)
	assert.Equal(t, want.Action, got.Action)
	assert.Equal(t, want.Value, got.Value)
	assert.Equal(t, want.Impact, got.Impact)
}

func TestParse_EmptyImpact(t *testing.T) {
	e := audit.Entry{Timestamp: time.Now().Truncate(time.Microsecond), Action: "Spending Adjustment", Value: 0}

	got, err := audit.Parse(audit.Format(e))
	require.NoError(t, err)
	assert.Equal(t, "", got.Impact)
	assert.Equal(t, 0, got.Value)
}

func TestParse_PreservesPadding(t *testing.T) {
	want := audit.Entry{
		Timestamp: time.Date(2024, 7, 1, 8, 0, 0, 0, time.Local),
		Action:    " Tax Adjustment ",
		Value:     1,
		Impact:    "  GDP: 1010.00, Public Debt: 495.00\t ",
	}

	got, err := audit.Parse(audit.Format(want))
	require.NoError(t, err)
	assert.Equal(t, want.Action, got.Action)
	assert.Equal(t, want.Impact, got.Impact)
}

func TestParse_CorruptLines(t *testing.T) {
	cases := map[string]string{
		"no separator":     "garbage",
		"missing impact":   "2024-01-01 00:00:00.000000: Action: Tax Adjustment, Value: 1",
		"two impacts":      "2024-01-01 00:00:00.000000: Action: X, Value: 1, Impact: a, Impact: b",
		"missing value":    "2024-01-01 00:00:00.000000: Action: X, Impact: a",
		"two values":       "2024-01-01 00:00:00.000000: Action: X, Value: 1, Value: 2, Impact: a",
		"non-int value":    "2024-01-01 00:00:00.000000: Action: X, Value: GDP Drop, Impact: a",
		"bad timestamp":    "yesterday: Action: X, Value: 1, Impact: a",
		"no action label":  "2024-01-01 00:00:00.000000: Event: X, Value: 1, Impact: a",
		"truncated record": "2024-01-01 00:00:00.000000: Action: X, Val",
		"padded value":     "2024-01-01 00:00:00.000000: Action: X, Value:  1, Impact: a",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := audit.Parse(line)
			assert.ErrorIs(t, err, audit.ErrLogCorruption)
		})
	}
}

func TestDecode_SkipsCorruptAndBlankLines(t *testing.T) {
	good := audit.Format(audit.Entry{Timestamp: time.Now(), Action: "Investment Adjustment", Value: 4, Impact: "GDP: 1080.00, Investment: 204.00"})

	entries := audit.Decode([]string{good, "", "not a record", "   ", good})

	require.Len(t, entries, 2)
	assert.Equal(t, "Investment Adjustment", entries[0].Action)
	assert.Equal(t, 4, entries[1].Value)
}

func TestEntry_Validate(t *testing.T) {
	base := audit.Entry{Action: "Tax Adjustment", Impact: "GDP: 1.00, Public Debt: 2.00"}
	require.NoError(t, base.Validate())

	bad := []audit.Entry{
		{Action: "", Impact: "x"},
		{Action: "Tax Adjustment", Impact: "a, Value: 3"},
		{Action: "Tax Adjustment", Impact: "a, Impact: b"},
		{Action: "Tax Adjustment", Impact: "line\nbreak"},
		{Action: "Tax, Value: Adjustment", Impact: "x"},
	}
	for _, e := range bad {
		assert.ErrorIs(t, e.Validate(), audit.ErrInvalidEntry, "entry %+v", e)
	}
}

func TestParse_RoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	properties.Property("format then parse preserves action, value and impact", prop.ForAll(
		func(action string, value int, words []string, micros int64) bool {
			impact := strings.Join(words, " , ")
			if action == "" {
				return true
			}
			e := audit.Entry{
				Timestamp: base.Add(time.Duration(micros) * time.Microsecond),
				Action:    action,
				Value:     value,
				Impact:    impact,
			}
			if e.Validate() != nil {
				return true
			}

			got, err := audit.Parse(audit.Format(e))
			if err != nil {
				return false
			}
			return got.Action == e.Action &&
				got.Value == e.Value &&
				got.Impact == e.Impact &&
				got.Timestamp.Format(audit.TimestampLayout) == e.Timestamp.Format(audit.TimestampLayout)
		},
		gen.AlphaString(),
		gen.Int(),
		gen.SliceOf(gen.AlphaString()),
		gen.Int64Range(0, 10*365*24*3600*1_000_000),
	))

	properties.TestingRun(t)
}
