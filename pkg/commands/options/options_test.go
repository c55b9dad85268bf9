package options

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDate(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.Local)

	tests := map[string]struct {
		in      string
		want    string
		wantErr bool
	}{
		"today":          {in: "today", want: "2024-03-04"},
		"empty":          {in: "", want: "2024-03-04"},
		"tomorrow":       {in: "tomorrow", want: "2024-03-05"},
		"key":            {in: "2023-12-31", want: "2023-12-31"},
		"short":          {in: "3/8", want: "2024-03-08"},
		"short same day": {in: "3/4", want: "2024-03-04"},
		"short rollover": {in: "1/3", want: "2025-01-03"},
		"garbage":        {in: "next tuesday", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ResolveDate(now, tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveDateLeapDay(t *testing.T) {
	// 2024 is a leap year.
	leap := time.Date(2024, time.February, 1, 9, 0, 0, 0, time.Local)
	got, err := ResolveDate(leap, "2/29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got)

	// 2025 is not, and 2/29 must not become March 1st.
	plain := time.Date(2025, time.February, 1, 9, 0, 0, 0, time.Local)
	_, err = ResolveDate(plain, "2/29")
	require.Error(t, err)

	// asked after the day has passed in 2027, the next 2/29 candidate is 2028.
	late := time.Date(2027, time.March, 2, 9, 0, 0, 0, time.Local)
	got, err = ResolveDate(late, "2/29")
	require.NoError(t, err)
	assert.Equal(t, "2028-02-29", got)
}

func TestItemPatchOnlyChangedFlags(t *testing.T) {
	o := &ItemOptions{}
	cmd := &cobra.Command{Use: "edit"}
	AddItemArgs(cmd, o, true)

	require.NoError(t, cmd.Flags().Parse([]string{"--title", "Call the bank", "--content", ""}))
	p := o.Patch(cmd)

	require.NotNil(t, p.Title)
	assert.Equal(t, "Call the bank", *p.Title)
	require.NotNil(t, p.Content)
	assert.Equal(t, "", *p.Content)
	assert.Nil(t, p.Mood)
	assert.Nil(t, p.StartTime)
	assert.Nil(t, p.EndTime)
}

func TestItemPatchWithoutTitleFlag(t *testing.T) {
	o := &ItemOptions{}
	cmd := &cobra.Command{Use: "add"}
	AddItemArgs(cmd, o, false)

	assert.Nil(t, cmd.Flags().Lookup("title"))
	require.NoError(t, cmd.Flags().Parse(nil))
	assert.True(t, o.Patch(cmd).IsEmpty())
}

func TestTitleFromArgs(t *testing.T) {
	assert.Equal(t, "buy milk", TitleFromArgs([]string{" buy", "milk "}))
	assert.Equal(t, "", TitleFromArgs(nil))
}

func TestOutputStructured(t *testing.T) {
	assert.Equal(t, "", (&OutputOptions{Format: FormatText}).Structured())
	assert.Equal(t, FormatYAML, (&OutputOptions{Format: "YAML"}).Structured())
	assert.Equal(t, FormatJSON, (&OutputOptions{JSON: true, Format: FormatYAML}).Structured())
}

func TestOutputValidate(t *testing.T) {
	assert.NoError(t, (&OutputOptions{}).Validate())
	assert.NoError(t, (&OutputOptions{Format: "json"}).Validate())
	assert.Error(t, (&OutputOptions{Format: "xml"}).Validate())
}

func TestHandleError(t *testing.T) {
	var buf bytes.Buffer
	o := &OutputOptions{JSON: true, Out: &buf}
	require.NoError(t, o.HandleError(errors.New("not found")))
	assert.JSONEq(t, `{"error":"not found"}`, buf.String())

	boom := errors.New("boom")
	assert.Equal(t, boom, (&OutputOptions{Format: FormatText}).HandleError(boom))
	assert.NoError(t, (&OutputOptions{JSON: true, Out: &buf}).HandleError(nil))
}
