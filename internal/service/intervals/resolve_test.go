package intervals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// 2030-01-07 is a Monday
var monday = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

func iv(start, end string) domain.Interval {
	return domain.Interval{Start: types.MustParseTimeOfDay(start), End: types.MustParseTimeOfDay(end)}
}

func settingsWithMonday(open, closeAt string, onlyRostered bool) *domain.MerchantSettings {
	return &domain.MerchantSettings{
		MerchantID: 1,
		BusinessHours: map[time.Weekday]domain.DayHours{
			time.Monday: {IsOpen: true, Open: types.MustParseTimeOfDay(open), Close: types.MustParseTimeOfDay(closeAt)},
			time.Sunday: {IsOpen: false},
		},
		HasBusinessHours:             true,
		ShowOnlyRosteredStaffDefault: onlyRostered,
	}
}

func schedule(start, end string) domain.StaffSchedule {
	return domain.StaffSchedule{StaffID: 5, DayOfWeek: time.Monday, StartTime: start, EndTime: end}
}

func TestBusinessHours(t *testing.T) {
	settings := settingsWithMonday("09:00", "18:00", false)

	tests := []struct {
		name     string
		settings *domain.MerchantSettings
		holidays []*domain.MerchantHoliday
		date     time.Time
		want     domain.Interval
		wantOpen bool
	}{
		{
			name:     "open weekday",
			settings: settings,
			date:     monday,
			want:     iv("09:00", "18:00"),
			wantOpen: true,
		},
		{
			name:     "holiday day off wins",
			settings: settings,
			holidays: []*domain.MerchantHoliday{{IsDayOff: true, Name: "New Year"}},
			date:     monday,
		},
		{
			name:     "holiday that is not a day off",
			settings: settings,
			holidays: []*domain.MerchantHoliday{{IsDayOff: false, Name: "Short day"}},
			date:     monday,
			want:     iv("09:00", "18:00"),
			wantOpen: true,
		},
		{
			name:     "closed weekday",
			settings: settings,
			date:     monday.AddDate(0, 0, -1),
		},
		{
			name:     "missing weekday",
			settings: settings,
			date:     monday.AddDate(0, 0, 1),
		},
		{
			name: "nil settings",
			date: monday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, open := BusinessHours(tt.settings, tt.holidays, tt.date)
			assert.Equal(t, tt.wantOpen, open)
			if tt.wantOpen {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRoster(t *testing.T) {
	business := iv("09:00", "18:00")

	tests := []struct {
		name      string
		settings  *domain.MerchantSettings
		schedules []domain.StaffSchedule
		override  *domain.ScheduleOverride
		mode      MergeMode
		want      []domain.Interval
		wantOK    bool
	}{
		{
			name:      "single schedule row",
			settings:  settingsWithMonday("09:00", "18:00", true),
			schedules: []domain.StaffSchedule{schedule("10:00", "16:00")},
			mode:      MergeBounding,
			want:      []domain.Interval{iv("10:00", "16:00")},
			wantOK:    true,
		},
		{
			name:      "split shift bounding",
			settings:  settingsWithMonday("09:00", "18:00", true),
			schedules: []domain.StaffSchedule{schedule("14:00", "17:00"), schedule("09:00", "12:00")},
			mode:      MergeBounding,
			want:      []domain.Interval{iv("09:00", "17:00")},
			wantOK:    true,
		},
		{
			name:      "split shift union keeps the gap",
			settings:  settingsWithMonday("09:00", "18:00", true),
			schedules: []domain.StaffSchedule{schedule("14:00", "17:00"), schedule("09:00", "12:00")},
			mode:      MergeUnion,
			want:      []domain.Interval{iv("09:00", "12:00"), iv("14:00", "17:00")},
			wantOK:    true,
		},
		{
			name: "union merges overlapping and adjacent rows",
			schedules: []domain.StaffSchedule{
				schedule("09:00", "11:00"), schedule("10:30", "12:00"), schedule("12:00", "13:00"), schedule("15:00", "16:00"),
			},
			mode:   MergeUnion,
			want:   []domain.Interval{iv("09:00", "13:00"), iv("15:00", "16:00")},
			wantOK: true,
		},
		{
			name:      "malformed rows are skipped",
			settings:  settingsWithMonday("09:00", "18:00", true),
			schedules: []domain.StaffSchedule{schedule("9am", "12:00"), schedule("13:00", "17:00")},
			mode:      MergeBounding,
			want:      []domain.Interval{iv("13:00", "17:00")},
			wantOK:    true,
		},
		{
			name:      "only malformed rows mean unavailable without fallback",
			settings:  settingsWithMonday("09:00", "18:00", false),
			schedules: []domain.StaffSchedule{schedule("9am", "5pm")},
			mode:      MergeBounding,
		},
		{
			name:      "only malformed rows mean unavailable in union mode",
			settings:  settingsWithMonday("09:00", "18:00", false),
			schedules: []domain.StaffSchedule{schedule("9am", "5pm"), schedule("13:00", "noon")},
			mode:      MergeUnion,
		},
		{
			name:      "first row of a split shift",
			settings:  settingsWithMonday("09:00", "18:00", true),
			schedules: []domain.StaffSchedule{schedule("09:00", "12:00"), schedule("14:00", "17:00")},
			mode:      MergeFirst,
			want:      []domain.Interval{iv("09:00", "12:00")},
			wantOK:    true,
		},
		{
			name:      "malformed first row means unavailable",
			settings:  settingsWithMonday("09:00", "18:00", false),
			schedules: []domain.StaffSchedule{schedule("9am", "12:00"), schedule("13:00", "17:00")},
			mode:      MergeFirst,
		},
		{
			name:     "first mode falls back to business hours without rows",
			settings: settingsWithMonday("09:00", "18:00", false),
			mode:     MergeFirst,
			want:     []domain.Interval{business},
			wantOK:   true,
		},
		{
			name:     "override replaces schedule",
			settings: settingsWithMonday("09:00", "18:00", true),
			schedules: []domain.StaffSchedule{
				schedule("09:00", "17:00"),
			},
			override: &domain.ScheduleOverride{StartTime: ptr.Ptr("12:00"), EndTime: ptr.Ptr("15:00")},
			mode:     MergeBounding,
			want:     []domain.Interval{iv("12:00", "15:00")},
			wantOK:   true,
		},
		{
			name:      "override with nil bound means unavailable",
			settings:  settingsWithMonday("09:00", "18:00", false),
			schedules: []domain.StaffSchedule{schedule("09:00", "17:00")},
			override:  &domain.ScheduleOverride{StartTime: ptr.Ptr("12:00")},
			mode:      MergeBounding,
		},
		{
			name:     "override with malformed bound means unavailable",
			settings: settingsWithMonday("09:00", "18:00", false),
			override: &domain.ScheduleOverride{StartTime: ptr.Ptr("noon"), EndTime: ptr.Ptr("15:00")},
			mode:     MergeBounding,
		},
		{
			name:     "no rows and only rostered staff",
			settings: settingsWithMonday("09:00", "18:00", true),
			mode:     MergeBounding,
		},
		{
			name:     "no rows falls back to business hours",
			settings: settingsWithMonday("09:00", "18:00", false),
			mode:     MergeBounding,
			want:     []domain.Interval{business},
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Roster(tt.settings, business, true, tt.schedules, tt.override, tt.mode)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoster_FallbackNeedsOpenBusiness(t *testing.T) {
	_, ok := Roster(settingsWithMonday("09:00", "18:00", false), domain.Interval{}, false, nil, nil, MergeBounding)
	assert.False(t, ok)
}

func TestEffectiveWindowsAndCovers(t *testing.T) {
	windows := EffectiveWindows(iv("10:00", "16:00"), []domain.Interval{iv("09:00", "12:00"), iv("14:00", "18:00"), iv("17:00", "19:00")})
	assert.Equal(t, []domain.Interval{iv("10:00", "12:00"), iv("14:00", "16:00")}, windows)

	assert.True(t, AnyCovers(windows, iv("10:30", "11:30")))
	assert.False(t, AnyCovers(windows, iv("11:30", "14:30")))
}

func TestParseMergeMode(t *testing.T) {
	mode, err := ParseMergeMode("")
	require.NoError(t, err)
	assert.Equal(t, MergeBounding, mode)

	mode, err = ParseMergeMode("union")
	require.NoError(t, err)
	assert.Equal(t, MergeUnion, mode)

	mode, err = ParseMergeMode("first")
	require.NoError(t, err)
	assert.Equal(t, MergeFirst, mode)

	_, err = ParseMergeMode("intersection")
	assert.ErrorIs(t, err, ErrUnknownMergeMode)
}
