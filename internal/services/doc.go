// Package services defines shared utilities consumed by the merge pipeline
// and the command-line front end.
//
// Key responsibilities:
//   - Context helpers that stamp job IDs, stage names, episode names, and the
//     active strategy for logging.
//   - Structured error markers plus the Wrap helper, and FailureKind which maps
//     any job error onto the validation / capability / attempt / exhausted /
//     internal taxonomy.
//
// Use these helpers when adding new merge stages so error handling and
// observability stay uniform across the pipeline.
package services
