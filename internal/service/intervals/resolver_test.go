package intervals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	merchantRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/merchant"
	staffRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type fakeSettings struct {
	settings *domain.MerchantSettings
	err      error
}

func (f *fakeSettings) GetSettings(context.Context, int64) (*domain.MerchantSettings, error) {
	return f.settings, f.err
}

type fakeHolidays struct {
	byDate map[string][]*domain.MerchantHoliday
}

func (f *fakeHolidays) ListByDate(_ context.Context, _ int64, date time.Time) ([]*domain.MerchantHoliday, error) {
	return f.byDate[date.Format(domain.DateFormat)], nil
}

type fakeStaff struct {
	staff           map[int64]*domain.Staff
	schedules       []domain.StaffSchedule
	override        *domain.ScheduleOverride
	scheduleQueries int
}

func (f *fakeStaff) GetActiveByID(_ context.Context, _ int64, staffID int64) (*domain.Staff, error) {
	s, ok := f.staff[staffID]
	if !ok {
		return nil, staffRepo.ErrStaffNotFound
	}
	return s, nil
}

func (f *fakeStaff) GetSchedules(context.Context, int64, int64, time.Weekday) ([]domain.StaffSchedule, error) {
	f.scheduleQueries++
	return f.schedules, nil
}

func (f *fakeStaff) GetOverride(context.Context, int64, int64, time.Time) (*domain.ScheduleOverride, error) {
	if f.override == nil {
		return nil, staffRepo.ErrOverrideNotFound
	}
	return f.override, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newResolver(settings *fakeSettings, holidays *fakeHolidays, staff *fakeStaff, mode MergeMode) *Resolver {
	return NewResolver(settings, holidays, staff, mode, nopLogger{})
}

func TestResolver_ResolveBusinessHours(t *testing.T) {
	holidays := &fakeHolidays{byDate: map[string][]*domain.MerchantHoliday{
		"2030-01-14": {{IsDayOff: true}},
	}}

	t.Run("open", func(t *testing.T) {
		r := newResolver(&fakeSettings{settings: settingsWithMonday("09:00", "18:00", false)}, holidays, &fakeStaff{}, MergeBounding)
		got, open, err := r.ResolveBusinessHours(context.Background(), 1, monday)
		require.NoError(t, err)
		assert.True(t, open)
		assert.Equal(t, iv("09:00", "18:00"), got)
	})

	t.Run("holiday", func(t *testing.T) {
		r := newResolver(&fakeSettings{settings: settingsWithMonday("09:00", "18:00", false)}, holidays, &fakeStaff{}, MergeBounding)
		_, open, err := r.ResolveBusinessHours(context.Background(), 1, monday.AddDate(0, 0, 7))
		require.NoError(t, err)
		assert.False(t, open)
	})

	t.Run("missing settings close the day", func(t *testing.T) {
		r := newResolver(&fakeSettings{err: merchantRepo.ErrSettingsNotFound}, holidays, &fakeStaff{}, MergeBounding)
		_, open, err := r.ResolveBusinessHours(context.Background(), 1, monday)
		require.NoError(t, err)
		assert.False(t, open)
	})

	t.Run("storage error", func(t *testing.T) {
		r := newResolver(&fakeSettings{err: errors.New("connection reset")}, holidays, &fakeStaff{}, MergeBounding)
		_, _, err := r.ResolveBusinessHours(context.Background(), 1, monday)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestResolver_ResolveStaffRoster(t *testing.T) {
	active := map[int64]*domain.Staff{5: {ID: 5, MerchantID: 1, Status: domain.StaffStatusActive}}
	split := []domain.StaffSchedule{schedule("09:00", "12:00"), schedule("14:00", "17:00")}

	t.Run("unknown staff", func(t *testing.T) {
		r := newResolver(&fakeSettings{settings: settingsWithMonday("09:00", "18:00", false)}, &fakeHolidays{}, &fakeStaff{staff: active}, MergeBounding)
		_, _, err := r.ResolveStaffRoster(context.Background(), 1, 6, monday)
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("bounding mode", func(t *testing.T) {
		r := newResolver(&fakeSettings{settings: settingsWithMonday("09:00", "18:00", false)}, &fakeHolidays{},
			&fakeStaff{staff: active, schedules: split}, MergeBounding)
		roster, ok, err := r.ResolveStaffRoster(context.Background(), 1, 5, monday)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []domain.Interval{iv("09:00", "17:00")}, roster)
	})

	t.Run("union mode", func(t *testing.T) {
		r := newResolver(&fakeSettings{settings: settingsWithMonday("09:00", "18:00", false)}, &fakeHolidays{},
			&fakeStaff{staff: active, schedules: split}, MergeUnion)
		roster, ok, err := r.ResolveStaffRoster(context.Background(), 1, 5, monday)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []domain.Interval{iv("09:00", "12:00"), iv("14:00", "17:00")}, roster)
	})

	t.Run("override skips weekly schedule", func(t *testing.T) {
		staff := &fakeStaff{
			staff:     active,
			schedules: split,
			override:  &domain.ScheduleOverride{StartTime: ptr.Ptr("10:00"), EndTime: ptr.Ptr("11:00")},
		}
		r := newResolver(&fakeSettings{settings: settingsWithMonday("09:00", "18:00", false)}, &fakeHolidays{}, staff, MergeBounding)
		roster, ok, err := r.ResolveStaffRoster(context.Background(), 1, 5, monday)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []domain.Interval{iv("10:00", "11:00")}, roster)
		assert.Zero(t, staff.scheduleQueries)
	})

	t.Run("holiday makes staff unavailable", func(t *testing.T) {
		holidays := &fakeHolidays{byDate: map[string][]*domain.MerchantHoliday{"2030-01-07": {{IsDayOff: true}}}}
		r := newResolver(&fakeSettings{settings: settingsWithMonday("09:00", "18:00", false)}, holidays,
			&fakeStaff{staff: active, schedules: split}, MergeBounding)
		_, ok, err := r.ResolveStaffRoster(context.Background(), 1, 5, monday)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
