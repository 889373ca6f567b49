package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTemp(t *testing.T) {
	cases := []struct {
		value    string
		expected Temperature
	}{
		{"0.0", 0},
		{"5.5", 55},
		{"45.0", 450},
		{"-3.2", -32},
		{"-99.9", -999},
		{"99.9", 999},
		{"9.9", 99},
		{"-0.1", -1},
	}

	for _, tt := range cases {
		t.Run(tt.value, func(t *testing.T) {
			// Embed the value mid-record so the returned index is meaningful.
			data := []byte("Kunming;" + tt.value + "\nx")
			got, next := parseTemp(data, len("Kunming;"))
			require.Equal(t, tt.expected, got)
			require.Equal(t, byte('\n'), data[next], "next must land on the terminator")
		})
	}
}

func TestParseTempChecked(t *testing.T) {
	valid := map[string]Temperature{
		"0.0":   0,
		"-0.0":  0,
		"5.5":   55,
		"45.0":  450,
		"-3.2":  -32,
		"-99.9": -999,
		"99.9":  999,
	}
	for value, expected := range valid {
		got, err := parseTempChecked([]byte(value))
		require.NoError(t, err, value)
		require.Equal(t, expected, got, value)
	}

	invalid := []string{
		"", "-", ".", "5", "55", "5.", ".5", "5.55", "555.5", "-555.5",
		"abc", "5,5", "5.x", "x.5", "--5.5", "5 .5", " 5.5",
	}
	for _, value := range invalid {
		_, err := parseTempChecked([]byte(value))
		require.ErrorIs(t, err, errInvalidRecord, "value %q", value)
	}
}

// Every valid temperature must survive a decode/render round trip: "5.0"
// decodes to 50 and renders back to "5.0".
func TestTempRoundTrip(t *testing.T) {
	for tenths := Temperature(-999); tenths <= 999; tenths++ {
		rendered := string(appendTemp(nil, tenths))
		decoded, err := parseTempChecked([]byte(rendered))
		require.NoError(t, err, rendered)
		require.Equal(t, tenths, decoded, rendered)

		fast, _ := parseTemp(append([]byte(rendered), '\n'), 0)
		require.Equal(t, tenths, fast, rendered)
	}
}

func TestAppendTemp(t *testing.T) {
	cases := map[Temperature]string{
		0:    "0.0",
		1:    "0.1",
		-1:   "-0.1",
		55:   "5.5",
		450:  "45.0",
		999:  "99.9",
		-999: "-99.9",
		-100: "-10.0",
	}
	for tenths, expected := range cases {
		t.Run(fmt.Sprint(tenths), func(t *testing.T) {
			require.Equal(t, expected, string(appendTemp(nil, tenths)))
		})
	}
}
