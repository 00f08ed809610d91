// Package merge turns one video and one subtitle script into a single output
// file by running ffmpeg strategies in priority order.
//
// Each job gets a private workspace that is removed on every exit path. Hard
// mode burns a dual-style ASS rendering into the picture and falls back to
// plainer filters; soft mode muxes a selectable subtitle track into Matroska
// and then MP4. The first attempt whose output passes the size check wins.
// Failures of any kind are reported through Result; ProcessEpisode never
// returns an error and never lets a panic escape.
package merge
