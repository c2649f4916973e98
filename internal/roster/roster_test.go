package roster

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_SingleRider(t *testing.T) {
	riders, err := ParseCSV(strings.NewReader("Alice, 62, 260, 30, 350, 300, 280, 250\n"))
	require.NoError(t, err)
	require.Len(t, riders, 1)

	assert.Equal(t, "Alice", riders[0].Name)
	assert.Equal(t, 30*time.Second, riders[0].PullDuration)
	assert.Equal(t, []int{350, 300, 280, 250}, riders[0].PowerByPosition)
	assert.Equal(t, 260.0, riders[0].RiderData.FTP)
	assert.Equal(t, 62.0, riders[0].RiderData.Weight)
}

func TestParseCSV_MultipleRidersCommentsAndBlankLines(t *testing.T) {
	content := "# name, weight, ftp, pull, p0, p1, p2, p3\r\n" +
		"\r\n" +
		"Alice,62,260,30,350,300,280,250\r\n" +
		"   # indented comment\n" +
		"Bob,75,300,45,330,290,270,240\n" +
		"\n" +
		"Charlie,80,320,60,370,320,300,270"

	riders, err := ParseCSV(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, riders, 3)

	assert.Equal(t, "Alice", riders[0].Name)
	assert.Equal(t, "Bob", riders[1].Name)
	assert.Equal(t, 45*time.Second, riders[1].PullDuration)
	assert.Equal(t, []int{330, 290, 270, 240}, riders[1].PowerByPosition)
	assert.Equal(t, "Charlie", riders[2].Name)
	assert.Equal(t, 60*time.Second, riders[2].PullDuration)
}

func TestParseCSV_ExtraFieldsIgnored(t *testing.T) {
	riders, err := ParseCSV(strings.NewReader("Alice,62,260,30,350,300,280,250,999,note\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{350, 300, 280, 250}, riders[0].PowerByPosition)
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty content", "", "no valid rider data found"},
		{"only comments", "# one\n# two\n", "no valid rider data found"},
		{"insufficient fields", "Alice,62,260,30,350,300\n", "expected at least 8 fields"},
		{"missing last power", "Alice,62,260,30,350,300,280\n", "expected at least 8 fields"},
		{"invalid weight", "Alice,heavy,260,30,350,300,280,250\n", "invalid weight value: heavy"},
		{"invalid ftp", "Alice,62,lots,30,350,300,280,250\n", "invalid FTP value: lots"},
		{"nan ftp", "Alice,62,NaN,30,350,300,280,250\n", "invalid FTP value: NaN"},
		{"inf ftp", "Alice,62,+Inf,30,350,300,280,250\n", "invalid FTP value: +Inf"},
		{"inf weight", "Alice,Inf,260,30,350,300,280,250\n", "invalid weight value: Inf"},
		{"invalid pull duration", "Alice,62,260,30.5,350,300,280,250\n", "invalid PullDuration value: 30.5"},
		{"overflowing pull duration", "Alice,62,260,20000000000,350,300,280,250\n", "invalid PullDuration value: 20000000000"},
		{"invalid power", "Alice,62,260,30,abc,300,280,250\n", "invalid PowerByPosition[0] value: abc"},
		{"invalid later power", "Alice,62,260,30,350,300,280,x\n", "invalid PowerByPosition[3] value: x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			riders, err := ParseCSV(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Nil(t, riders)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseCSV_ErrorCarriesLineNumber(t *testing.T) {
	content := "# header\nAlice,62,260,30,350,300,280,250\nBob,75,bad,45,330,290,270,240\n"

	_, err := ParseCSV(strings.NewReader(content))
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 3, perr.Line)
	assert.Equal(t, "line 3: invalid FTP value: bad", err.Error())
}

func TestParseCSV_EmptyIsSentinel(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, ErrNoRiders)
}

const teamYAML = `
riders:
  - name: Alice
    weight: 62
    ftp: 260
    pull_seconds: 30
    power_by_position: [300, 260, 240, 220, 210]
  - name: Bob
    weight: 75
    ftp: 300
    pull_seconds: 45
    power_by_position: [340]
`

func TestParseYAML(t *testing.T) {
	riders, err := ParseYAML(strings.NewReader(teamYAML))
	require.NoError(t, err)
	require.Len(t, riders, 2)

	assert.Equal(t, "Alice", riders[0].Name)
	assert.Equal(t, 30*time.Second, riders[0].PullDuration)
	assert.Equal(t, []int{300, 260, 240, 220, 210}, riders[0].PowerByPosition)
	assert.Equal(t, 260.0, riders[0].RiderData.FTP)
	assert.Equal(t, 62.0, riders[0].RiderData.Weight)

	assert.Equal(t, "Bob", riders[1].Name)
	assert.Equal(t, []int{340}, riders[1].PowerByPosition)
}

func TestParseYAML_Errors(t *testing.T) {
	_, err := ParseYAML(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoRiders)

	_, err = ParseYAML(strings.NewReader("riders: []\n"))
	assert.ErrorIs(t, err, ErrNoRiders)

	_, err = ParseYAML(strings.NewReader("riders:\n  - name: A\n    cadence: 90\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing roster")

	_, err = ParseYAML(strings.NewReader("riders:\n  - name: A\n    ftp: .nan\n    pull_seconds: 30\n    power_by_position: [300]\n"))
	assert.ErrorContains(t, err, "invalid FTP value")

	_, err = ParseYAML(strings.NewReader("riders:\n  - name: A\n    weight: -.inf\n    ftp: 260\n    pull_seconds: 30\n    power_by_position: [300]\n"))
	assert.ErrorContains(t, err, "invalid weight value")

	_, err = ParseYAML(strings.NewReader("riders:\n  - name: A\n    ftp: 260\n    pull_seconds: 20000000000\n    power_by_position: [300]\n"))
	assert.ErrorContains(t, err, "invalid PullDuration value: 20000000000")
}

func TestPullDuration_Bounds(t *testing.T) {
	d, ok := pullDuration(30)
	assert.True(t, ok)
	assert.Equal(t, 30*time.Second, d)

	_, ok = pullDuration(maxPullSeconds)
	assert.True(t, ok)

	_, ok = pullDuration(maxPullSeconds + 1)
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "team.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Alice,62,260,30,350,300,280,250\n"), 0644))
	riders, err := LoadFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, riders, 1)

	yamlPath := filepath.Join(dir, "team.YML")
	require.NoError(t, os.WriteFile(yamlPath, []byte(teamYAML), 0644))
	riders, err = LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, riders, 2)

	jsonPath := filepath.Join(dir, "team.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte("{}"), 0644))
	_, err = LoadFile(jsonPath)
	assert.ErrorContains(t, err, "unsupported roster format")

	_, err = LoadFile(filepath.Join(dir, "missing.csv"))
	assert.ErrorContains(t, err, "opening roster")
}
