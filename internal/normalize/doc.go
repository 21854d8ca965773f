// Package normalize corrects media file extensions to match their detected
// true type and writes resolved capture timestamps via the metadata tool.
//
// Extension collisions are resolved with a numeric counter suffix, a policy
// deliberately distinct from the relocator's random duplicate suffix.
package normalize
