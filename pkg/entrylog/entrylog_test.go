package entrylog_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/symptomline/pkg/entrylog"
	"github.com/Sumatoshi-tech/symptomline/pkg/symptom"
)

const jsonExport = `[
  {"id": "a", "name": "Headache", "category": "physical", "severity": 3, "timestamp": "2024-03-01T08:15:00Z"},
  {"id": "b", "name": "Anxiety", "category": "EMOTIONAL", "severity": 2.5, "timestamp": 1709283600, "notes": "before meeting"}
]`

const yamlExport = `entries:
  - id: a
    name: Headache
    category: PHYSICAL
    severity: 4
    timestamp: 2024-03-01 22:30
  - id: b
    name: Insomnia
    category: sleep
    severity: 5
    timestamp: 2024-03-02
`

func TestDecoder_JSONList(t *testing.T) {
	t.Parallel()

	entries, err := entrylog.Decoder{Location: time.UTC}.DecodeBytes([]byte(jsonExport))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, symptom.Entry{
		ID:        "a",
		Name:      "Headache",
		Category:  symptom.CategoryPhysical,
		Severity:  3,
		Timestamp: time.Date(2024, time.March, 1, 8, 15, 0, 0, time.UTC),
	}, entries[0])

	assert.Equal(t, symptom.CategoryEmotional, entries[1].Category)
	assert.True(t, entries[1].Timestamp.Equal(time.Unix(1709283600, 0)))
	assert.Equal(t, "before meeting", entries[1].Notes)
}

func TestDecoder_YAMLZonelessTimestampsUseLocation(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)

	entries, err := entrylog.Decoder{Location: tokyo}.DecodeBytes([]byte(yamlExport))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.True(t, entries[0].Timestamp.Equal(time.Date(2024, time.March, 1, 22, 30, 0, 0, tokyo)))
	assert.True(t, entries[1].Timestamp.Equal(time.Date(2024, time.March, 2, 0, 0, 0, 0, tokyo)))
	assert.Equal(t, symptom.CategorySleep, entries[1].Category)
}

func TestDecoder_UnparsableTimestampIsKeptZero(t *testing.T) {
	t.Parallel()

	data := `[{"id": "x", "name": "Nausea", "severity": 2, "timestamp": "sometime tuesday"},
	          {"id": "y", "name": "Nausea", "severity": 2}]`

	entries, err := entrylog.Decoder{}.DecodeBytes([]byte(data))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[0].Resolved())
	assert.False(t, entries[1].Resolved())
}

func TestDecoder_MissingIDsArePositional(t *testing.T) {
	t.Parallel()

	data := `[{"name": "Fog", "severity": 1, "timestamp": "2024-03-01"}, {"name": "Fog", "severity": 2, "timestamp": "2024-03-02"}]`

	entries, err := entrylog.Decoder{}.DecodeBytes([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, "#1", entries[0].ID)
	assert.Equal(t, "#2", entries[1].ID)
}

func TestDecoder_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "missing name", data: `[{"severity": 1}]`},
		{name: "severity not a number", data: `[{"name": "Fog", "severity": "high"}]`},
		{name: "scalar document", data: `42`},
		{name: "object without entries", data: `{"items": []}`},
		{name: "empty name", data: `[{"name": "", "severity": 1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := entrylog.Decoder{}.DecodeBytes([]byte(tt.data))
			require.ErrorIs(t, err, entrylog.ErrInvalidExport)

			var verr *entrylog.ValidationError

			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Issues)
		})
	}
}

func TestDecoder_MalformedDocument(t *testing.T) {
	t.Parallel()

	_, err := entrylog.Decoder{Format: entrylog.FormatJSON}.DecodeBytes([]byte(`[{"name": `))
	require.ErrorIs(t, err, entrylog.ErrDecode)

	_, err = entrylog.Decoder{Format: entrylog.FormatYAML}.DecodeBytes([]byte("entries: [\n  - : :"))
	require.ErrorIs(t, err, entrylog.ErrDecode)
}

func TestDecoder_BinaryInput(t *testing.T) {
	t.Parallel()

	_, err := entrylog.Decoder{}.DecodeBytes([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.ErrorIs(t, err, entrylog.ErrDecode)
}

func TestDecoder_ByteOrderMark(t *testing.T) {
	t.Parallel()

	entries, err := entrylog.Decoder{Format: entrylog.FormatJSON}.DecodeBytes(append([]byte("\xEF\xBB\xBF"), jsonExport...))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDecoder_YAMLAliasesExpand(t *testing.T) {
	t.Parallel()

	data := `entries:
  - {name: Headache, severity: 2, category: &cat physical, timestamp: &at 2024-03-01 08:00}
  - {name: Nausea, severity: 1, category: *cat, timestamp: *at}
`

	entries, err := entrylog.Decoder{Format: entrylog.FormatYAML, Location: time.UTC}.DecodeBytes([]byte(data))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, symptom.CategoryPhysical, entries[1].Category)
	assert.True(t, entries[1].Timestamp.Equal(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)))
}

func TestDecoder_YAMLAliasCycle(t *testing.T) {
	t.Parallel()

	for _, data := range []string{
		"entries: &a [*a]\n",
		"entries:\n  - &e {name: Fog, severity: 1, nested: *e}\n",
	} {
		_, err := entrylog.Decoder{Format: entrylog.FormatYAML}.Records([]byte(data))
		require.ErrorIs(t, err, entrylog.ErrDecode, data)
		require.ErrorIs(t, err, entrylog.ErrAliasCycle, data)
	}
}

func TestDecoder_YAMLAliasExpansionIsBounded(t *testing.T) {
	t.Parallel()

	const fanout = 9

	var doc strings.Builder

	doc.WriteString("l0: &l0 [" + strings.TrimSuffix(strings.Repeat(`"x",`, fanout), ",") + "]\n")

	for level := 1; level <= 7; level++ {
		ref := fmt.Sprintf("*l%d,", level-1)
		fmt.Fprintf(&doc, "l%d: &l%d [%s]\n", level, level, strings.TrimSuffix(strings.Repeat(ref, fanout), ","))
	}

	doc.WriteString("entries: *l7\n")

	_, err := entrylog.Decoder{Format: entrylog.FormatYAML}.Records([]byte(doc.String()))
	require.ErrorIs(t, err, entrylog.ErrDecode)
	require.ErrorIs(t, err, entrylog.ErrTooManyNodes)
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	entries, err := entrylog.Decoder{}.DecodeBytes([]byte("  \n"))
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestDecoder_ReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "log.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlExport), 0o600))

	entries, err := entrylog.Decoder{Location: time.UTC}.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = entrylog.Decoder{}.ReadFile(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecoder_Reader(t *testing.T) {
	t.Parallel()

	entries, err := entrylog.Decoder{}.Decode(strings.NewReader(jsonExport))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, entrylog.FormatJSON, entrylog.FormatFromPath("a/b.JSON"))
	assert.Equal(t, entrylog.FormatYAML, entrylog.FormatFromPath("log.yaml"))
	assert.Equal(t, entrylog.FormatYAML, entrylog.FormatFromPath("log.yml"))
	assert.Equal(t, entrylog.FormatAuto, entrylog.FormatFromPath("-"))
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("X", -5*60*60)

	tests := []struct {
		name string
		in   any
		want time.Time
		ok   bool
	}{
		{name: "rfc3339", in: "2024-03-01T10:00:00+02:00", want: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), ok: true},
		{name: "local datetime", in: "2024-03-01 10:00:00", want: time.Date(2024, 3, 1, 10, 0, 0, 0, loc), ok: true},
		{name: "local date", in: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, loc), ok: true},
		{name: "epoch seconds", in: float64(1709287200), want: time.Unix(1709287200, 0), ok: true},
		{name: "epoch millis", in: float64(1709287200000), want: time.Unix(1709287200, 0), ok: true},
		{name: "yaml int", in: 1709287200, want: time.Unix(1709287200, 0), ok: true},
		{name: "time value", in: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "garbage", in: "yesterday-ish"},
		{name: "empty", in: "  "},
		{name: "nil", in: nil},
		{name: "negative", in: float64(-1)},
		{name: "bool", in: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := entrylog.ParseTimestamp(tt.in, loc)
			require.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
			} else {
				assert.True(t, got.IsZero())
			}
		})
	}
}
