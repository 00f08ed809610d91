// Package subtitles parses SubRip scripts and renders them into the formats
// the merge pipeline hands to ffmpeg.
//
// Key pieces:
//   - Decode/Parse: tolerant SubRip parsing across UTF-8, Latin-1 and
//     Windows-1252 inputs, dropping blocks without a timing line.
//   - Classify/Split: CJK versus Latin line bucketing by codepoint ratio.
//   - ComputeLayout: resolution-relative font sizes and margins for the two
//     stacked styles.
//   - GenerateASS: a dual-style Advanced SubStation script.
//   - FormatSRT: a clean, renumbered SubRip rendition for muxing.
//
// Everything here is pure and allocation-light; file helpers are thin
// wrappers over the in-memory functions.
package subtitles
