// Package logtail reads the tail of popcorn's log file for the in-app log
// overlay.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// O(maxLines) regardless of file size. A missing file is not an error: it
// yields no lines, which is what a fresh install looks like.
//
// LevelOf and Filter understand the text format written by
// charmbracelet/log ("<timestamp> <LEVEL> popcorn: <msg> key=value ...").
// Continuation lines carry no level and inherit the level of the line
// above them.
package logtail
