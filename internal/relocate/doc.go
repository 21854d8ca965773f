// Package relocate moves processed media files into the target directory
// layout: flat by type, or year then type.
//
// Name collisions are resolved by appending a random duplicate suffix until
// an unused name is found; colliding files are never overwritten or merged.
// Files whose source folder matches a known collection produce an album
// update for the manifest merge phase.
package relocate
