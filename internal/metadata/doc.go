// Package metadata resolves the authoritative capture timestamp for media
// files from multiple sources with a fixed precedence.
//
// A sidecar JSON exported next to the file wins over anything the metadata
// tool extracts; within extracted fields DateTimeOriginal beats CreateDate
// beats FileModifyDate. Parse failures fall through silently to the next
// source; only exhaustion of the whole chain is reported.
package metadata
