package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "metadata", "read fields", "exiftool invocation failed", base)

	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
	for _, fragment := range []string{"metadata", "read fields", "exiftool invocation failed"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("error %q missing fragment %q", err.Error(), fragment)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "relocation", "move", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected ErrTransient default, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrValidation, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected generic detail, got %q", err.Error())
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(Wrap(ErrConfiguration, "init", "create output dirs", "", errors.New("denied"))) {
		t.Fatal("configuration errors should be fatal")
	}
	if IsFatal(Wrap(ErrExternalTool, "metadata", "read", "", errors.New("exit 1"))) {
		t.Fatal("external tool errors should not abort the run")
	}
}
