package metadata

import (
	"errors"
	"testing"
	"time"

	"snapsort/internal/media/exiftool"
)

func TestParseSidecarTimeExplicitPattern(t *testing.T) {
	got, err := ParseSidecarTime("01.06.2022, 09:30:00 UTC")
	if err != nil {
		t.Fatalf("ParseSidecarTime: %v", err)
	}
	want := time.Date(2022, 6, 1, 9, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseSidecarTimeWithoutSuffix(t *testing.T) {
	got, err := ParseSidecarTime("24.12.2019, 18:00:05")
	if err != nil {
		t.Fatalf("ParseSidecarTime: %v", err)
	}
	if got.Year() != 2019 || got.Month() != time.December || got.Day() != 24 {
		t.Fatalf("unexpected date: %v", got)
	}
}

func TestParseSidecarTimeFallback(t *testing.T) {
	got, err := ParseSidecarTime("2021-03-14 15:09:26")
	if err != nil {
		t.Fatalf("fallback parse failed: %v", err)
	}
	if got.Year() != 2021 || got.Second() != 26 {
		t.Fatalf("unexpected time: %v", got)
	}
}

func TestParseSidecarTimeGarbage(t *testing.T) {
	if _, err := ParseSidecarTime("not a date"); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestParseExifTime(t *testing.T) {
	cases := []string{
		"2023:05:01 10:00:00",
		"2023:05:01 10:00:00.123",
		"2023:05:01 10:00:00+02:00",
		"2023:05:01 10:00:00.45+02:00",
	}
	for _, value := range cases {
		got, err := ParseExifTime(value)
		if err != nil {
			t.Errorf("ParseExifTime(%q): %v", value, err)
			continue
		}
		if got.Year() != 2023 || got.Month() != time.May || got.Day() != 1 || got.Hour() != 10 {
			t.Errorf("ParseExifTime(%q) = %v", value, got)
		}
	}
}

func TestParseExifTimeEmpty(t *testing.T) {
	if _, err := ParseExifTime("  "); err == nil {
		t.Fatal("expected error for empty value")
	}
}

func TestResolveSidecarWinsOverExif(t *testing.T) {
	sidecar := &Sidecar{}
	sidecar.PhotoTakenTime.Formatted = "01.06.2022, 09:30:00 UTC"
	fields := exiftool.Fields{DateTimeOriginal: "2023:05:01 10:00:00"}

	got, err := Resolve(sidecar, fields)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := time.Date(2022, 6, 1, 9, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("sidecar should win: got %v, want %v", got, want)
	}
}

func TestResolvePrecedenceWithinExif(t *testing.T) {
	fields := exiftool.Fields{
		DateTimeOriginal: "2020:01:01 00:00:00",
		CreateDate:       "2021:01:01 00:00:00",
		FileModifyDate:   "2022:01:01 00:00:00",
	}
	got, err := Resolve(nil, fields)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Year() != 2020 {
		t.Fatalf("DateTimeOriginal should win, got %v", got)
	}
}

func TestResolveFallsThroughUnparseableSidecar(t *testing.T) {
	sidecar := &Sidecar{}
	sidecar.PhotoTakenTime.Formatted = "definitely not a date"
	fields := exiftool.Fields{CreateDate: "2021:07:04 12:00:00"}

	got, err := Resolve(sidecar, fields)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Year() != 2021 {
		t.Fatalf("expected CreateDate fallback, got %v", got)
	}
}

func TestResolveSidecarEpochFallback(t *testing.T) {
	sidecar := &Sidecar{}
	sidecar.PhotoTakenTime.Timestamp = "1654076400"

	got, err := Resolve(sidecar, exiftool.Fields{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Unix() != 1654076400 {
		t.Fatalf("epoch mismatch: %v", got)
	}
	if got.Location() != time.Local {
		t.Fatalf("expected local time, got zone %v", got.Location())
	}
	if want := time.Unix(1654076400, 0).Year(); got.Year() != want {
		t.Fatalf("year mismatch: got %d want %d", got.Year(), want)
	}
}

func TestResolveExhaustion(t *testing.T) {
	_, err := Resolve(nil, exiftool.Fields{})
	if !errors.Is(err, ErrNoTimestamp) {
		t.Fatalf("expected ErrNoTimestamp, got %v", err)
	}
}
