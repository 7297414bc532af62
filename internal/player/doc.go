// Package player plays preset previews. A single worker owns the audio
// output; each new request replaces whatever is currently playing.
package player
