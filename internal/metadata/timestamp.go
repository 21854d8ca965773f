package metadata

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"snapsort/internal/media/exiftool"
)

// ErrNoTimestamp reports that every capture-time source was absent or
// unparseable for a file.
var ErrNoTimestamp = errors.New("no capture timestamp found")

const (
	sidecarLayout = "02.01.2006, 15:04:05"
	exifLayout    = "2006:01:02 15:04:05"
)

// exifSuffixLayouts covers exiftool values carrying sub-second and/or
// timezone-offset suffixes.
var exifSuffixLayouts = []string{
	"2006:01:02 15:04:05.999999999Z07:00",
	"2006:01:02 15:04:05.999999999-07:00",
	"2006:01:02 15:04:05Z07:00",
	"2006:01:02 15:04:05-07:00",
	"2006:01:02 15:04:05.999999999",
}

// fallbackLayouts is the general date parse tried when the explicit patterns
// do not match.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006 15:04:05",
	"2006-01-02",
	"02.01.2006",
}

// ParseSidecarTime parses the human-formatted sidecar capture time. A
// trailing " UTC" suffix is stripped before parsing; the result stays naive,
// no zone conversion is applied.
func ParseSidecarTime(value string) (time.Time, error) {
	cleaned := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), " UTC"))
	if cleaned == "" {
		return time.Time{}, errors.New("empty sidecar time")
	}
	if t, err := time.ParseInLocation(sidecarLayout, cleaned, time.Local); err == nil {
		return t, nil
	}
	return parseFallback(cleaned)
}

// ParseExifTime parses an exiftool date value, accepting optional sub-second
// and timezone-offset suffixes, falling back to the general parse.
func ParseExifTime(value string) (time.Time, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return time.Time{}, errors.New("empty exif time")
	}
	if t, err := time.ParseInLocation(exifLayout, cleaned, time.Local); err == nil {
		return t, nil
	}
	for _, layout := range exifSuffixLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return parseFallback(cleaned)
}

func parseFallback(value string) (time.Time, error) {
	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format: " + value)
}

// Resolve determines the authoritative capture timestamp for a file from the
// sidecar and extracted metadata, strictly in source-priority order:
// sidecar taken time, DateTimeOriginal, CreateDate, FileModifyDate. The first
// source that parses wins. Parse failures fall through silently; only full
// exhaustion is reported, as ErrNoTimestamp.
func Resolve(sidecar *Sidecar, fields exiftool.Fields) (time.Time, error) {
	if taken := sidecar.TakenTime(); taken != "" {
		if t, err := ParseSidecarTime(taken); err == nil {
			return t, nil
		}
	}
	// Epoch seconds stay in local time so the year a file sorts into
	// matches what the formatted sidecar value would have produced.
	if epoch := sidecar.EpochTimestamp(); epoch != "" {
		if secs, err := strconv.ParseInt(epoch, 10, 64); err == nil && secs > 0 {
			return time.Unix(secs, 0), nil
		}
	}
	for _, value := range []string{fields.DateTimeOriginal, fields.CreateDate, fields.FileModifyDate} {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if t, err := ParseExifTime(value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrNoTimestamp
}
