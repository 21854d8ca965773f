package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Sidecar is the parsed companion JSON exported alongside a media file.
type Sidecar struct {
	Title          string `json:"title"`
	PhotoTakenTime struct {
		Timestamp string `json:"timestamp"`
		Formatted string `json:"formatted"`
	} `json:"photoTakenTime"`
}

// TakenTime returns the human-formatted capture time string, if any.
func (s *Sidecar) TakenTime() string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s.PhotoTakenTime.Formatted)
}

// EpochTimestamp returns the raw epoch-seconds string, if any.
func (s *Sidecar) EpochTimestamp() string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s.PhotoTakenTime.Timestamp)
}

const sidecarSuffix = ".supplemental-metadata.json"

// Export tooling truncates long sidecar basenames; these lengths cover the
// variants observed in real archives.
var truncationLengths = []int{48, 47, 46}

// SidecarCandidates lists the paths a sidecar for mediaPath may live at, in
// preference order.
func SidecarCandidates(mediaPath string) []string {
	candidates := []string{
		mediaPath + sidecarSuffix,
		mediaPath + ".json",
	}
	dir := filepath.Dir(mediaPath)
	base := filepath.Base(mediaPath)
	for _, length := range truncationLengths {
		if len(base) <= length {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, base[:length]+sidecarSuffix))
	}
	return candidates
}

// LoadSidecar locates and parses the sidecar for mediaPath. A missing or
// malformed sidecar yields (nil, false): resolution falls through to the
// extracted metadata sources instead.
func LoadSidecar(mediaPath string) (*Sidecar, bool) {
	for _, candidate := range SidecarCandidates(mediaPath) {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		var sidecar Sidecar
		if err := json.Unmarshal(data, &sidecar); err != nil {
			continue
		}
		return &sidecar, true
	}
	return nil, false
}
