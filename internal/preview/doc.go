// Package preview locates the audio preview file for a preset. A preset
// either is a playable wav itself, ships an ogg preview next to it in a
// .previews directory, or has its preview installed separately under the
// Native Browser Preview Library.
package preview
