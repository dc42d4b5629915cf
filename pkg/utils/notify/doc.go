// Package notify writes formatted notifications for CLI users.
//
// Message types include success (✔), error (✗), warning (⚠), info (ℹ), activity (►)
// and title messages with a custom emoji. [StageSeparatingWriter] inserts a blank line
// before each title so consecutive stages of a command read as separate blocks.
package notify
