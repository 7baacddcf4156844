// Package multiaxis merges single-axis scripts into one multi-channel
// script and splits a multi-channel script back into single-axis ones.
package multiaxis

import "errors"

var (
	// ErrDuplicateChannel is returned when two scripts in the same
	// (dir,title) group carry the same channel tag.
	ErrDuplicateChannel = errors.New("multiaxis: duplicate channel in group")

	// ErrNoPrimary is returned when a group has no channel-less script and
	// MergeOptions.AllowMissingActions is not set.
	ErrNoPrimary = errors.New("multiaxis: no primary script in group")
)
