// Package main implements the submerge command-line interface.
//
// The CLI merges a video with a bilingual subtitle file, either by burning a
// dual-style ASS rendering into the picture or by muxing the subtitle as a
// selectable track. Besides the single-episode `merge` command it offers
// `batch` for manifests of episodes, `inspect`, `ass` and `clean` for working
// with subtitle files without running ffmpeg, `doctor` for environment
// checks, and `config` helpers.
//
// Configuration is loaded once per invocation through commandContext and
// shared by every subcommand; `config init` skips loading so it can run
// before a config file exists.
package main
