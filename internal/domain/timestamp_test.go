package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)
	return loc
}

func TestExtractScheduledDay_FormatsAgree(t *testing.T) {
	loc := saoPaulo(t)

	iso, err := ExtractScheduledDay("2025-05-14T17:00:00.000Z", loc)
	require.NoError(t, err)

	legacy, err := ExtractScheduledDay("14/05/2025 17:00", loc)
	require.NoError(t, err)

	assert.Equal(t, types.DateOf(2025, time.May, 14), iso)
	assert.Equal(t, iso, legacy)
}

func TestExtractScheduledDay(t *testing.T) {
	loc := saoPaulo(t)

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "iso with offset", raw: "2025-05-16T10:00:00-03:00", want: "2025-05-16"},
		{name: "iso utc crossing midnight", raw: "2025-05-17T01:30:00Z", want: "2025-05-16"},
		{name: "iso without zone read in location", raw: "2025-05-16T23:30:00", want: "2025-05-16"},
		{name: "legacy single digits", raw: "5/6/2025 14:00", want: "2025-06-05"},
		{name: "legacy extra spaces", raw: "  19/05/2025   10:00 ", want: "2025-05-19"},
		{name: "legacy missing time", raw: "19/05/2025", wantErr: ErrInvalidTimestamp},
		{name: "legacy impossible date", raw: "31/04/2025 10:00", wantErr: ErrInvalidTimestamp},
		{name: "legacy not numeric", raw: "aa/05/2025 10:00", wantErr: ErrInvalidTimestamp},
		{name: "iso garbage", raw: "2025-13-45T99:00:00Z", wantErr: ErrInvalidTimestamp},
		{name: "plain date", raw: "2025-05-16", wantErr: ErrUnrecognizedTimestamp},
		{name: "empty", raw: "", wantErr: ErrUnrecognizedTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractScheduledDay(tt.raw, loc)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatScheduledAt_RoundTrip(t *testing.T) {
	loc := saoPaulo(t)
	at := types.DateOf(2025, time.May, 16).At("10:00", loc)

	raw := FormatScheduledAt(at)
	assert.Equal(t, "2025-05-16T10:00:00-03:00", raw)

	day, err := ExtractScheduledDay(raw, loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-16", day.String())
}
