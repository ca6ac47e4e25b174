// Package timezone pins every wall-clock calculation to the hotel's configured zone (APP_TIMEZONE).
//
// Shift windows, date-range presets and booking dates are all calendar-day based, so callers should
// read the clock through Now and truncate with StartOfDay instead of using time.Now directly.
// An unknown or empty zone name falls back to UTC.
package timezone
