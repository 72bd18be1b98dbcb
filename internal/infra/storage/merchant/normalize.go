package merchant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	keyBusinessHours    = "businesshours"
	keyMinimumNotice    = "minimumbookingnoticeminutes"
	keyShowOnlyRostered = "showonlyrosteredstaffdefault"
	keyDayOpen          = "open"
	keyDayClose         = "close"
	keyDayIsOpen        = "isopen"
	closedLiteral       = "closed"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// NormalizeSettings превращает JSON настроек мерчанта в domain.MerchantSettings.
//
// Правила:
//   - ключи верхнего уровня и названия дней сравниваются без учёта регистра,
//     camelCase и snake_case равнозначны; принимаются только полные названия дней;
//   - день открыт, только если обе границы разбираются и open < close;
//     отсутствующий isOpen означает "открыто", "closed" или пустая граница - закрыто;
//   - NULL или пустой JSON - ErrSettingsNotFound.
func NormalizeSettings(merchantID int64, raw []byte) (*domain.MerchantSettings, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrSettingsNotFound
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return nil, fmt.Errorf("%w: merchant id=%d: %v", ErrInvalidSettings, merchantID, err)
	}
	fields := normalizeKeys(top)

	settings := &domain.MerchantSettings{
		MerchantID:    merchantID,
		BusinessHours: make(map[time.Weekday]domain.DayHours),
	}

	if rawHours, ok := fields[keyBusinessHours]; ok && !isNull(rawHours) {
		var days map[string]json.RawMessage
		if err := json.Unmarshal(rawHours, &days); err != nil {
			return nil, fmt.Errorf("%w: merchant id=%d: businessHours: %v", ErrInvalidSettings, merchantID, err)
		}
		for name, rawDay := range normalizeKeys(days) {
			weekday, known := weekdayNames[name]
			if !known {
				continue
			}
			settings.BusinessHours[weekday] = normalizeDay(rawDay)
		}
		settings.HasBusinessHours = len(settings.BusinessHours) > 0
	}

	if v, ok := fields[keyMinimumNotice]; ok {
		settings.MinimumBookingNoticeMinutes = parseMinutes(v)
	}
	if v, ok := fields[keyShowOnlyRostered]; ok {
		settings.ShowOnlyRosteredStaffDefault = parseBool(v)
	}

	return settings, nil
}

func normalizeDay(raw json.RawMessage) domain.DayHours {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.DayHours{}
	}
	f := normalizeKeys(fields)

	open, okOpen := parseBound(f[keyDayOpen])
	closeAt, okClose := parseBound(f[keyDayClose])

	day := domain.DayHours{Open: open, Close: closeAt}
	day.IsOpen = okOpen && okClose && open < closeAt
	if v, ok := f[keyDayIsOpen]; ok && !isNull(v) {
		day.IsOpen = day.IsOpen && parseBool(v)
	}
	return day
}

// normalizeKeys приводит ключи к нижнему регистру без "_" и "-".
// При коллизии ("monday" и "MONDAY") выигрывает ключ, уже записанный в нижнем регистре.
func normalizeKeys(in map[string]json.RawMessage) map[string]json.RawMessage {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]json.RawMessage, len(in))
	for _, k := range keys {
		nk := normalizeKey(k)
		if _, exists := out[nk]; exists && k != strings.ToLower(k) {
			continue
		}
		out[nk] = in[k]
	}
	return out
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.NewReplacer("_", "", "-", "").Replace(k)
}

func parseBound(raw json.RawMessage) (types.TimeOfDay, bool) {
	if isNull(raw) {
		return 0, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	if strings.EqualFold(strings.TrimSpace(s), closedLiteral) {
		return 0, false
	}
	t, err := types.ParseTimeOfDay(s)
	if err != nil {
		return 0, false
	}
	return t, true
}

func parseBool(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		parsed, err := strconv.ParseBool(strings.TrimSpace(s))
		return err == nil && parsed
	}
	return false
}

func parseMinutes(raw json.RawMessage) int {
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0
		}
		n = float64(parsed)
	}
	if n < 0 {
		return 0
	}
	return int(n)
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
