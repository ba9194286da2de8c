package model

import "errors"

// Sentinel errors for broad classification. Structural errors abort a build;
// row-level errors are reported and skipped by the spreadsheet parser.
var (
	ErrTemplateNotFound      = errors.New("template not found")
	ErrTemplateUnreadable    = errors.New("template unreadable")
	ErrUnknownLayoutKey      = errors.New("unknown layout key")
	ErrLayoutIndexOutOfRange = errors.New("layout index out of range")
	ErrSlideRemovalFailed    = errors.New("slide removal failed")
	ErrPackageWrite          = errors.New("package write failed")
	ErrUnknownStatus         = errors.New("unknown status")
	ErrMalformedRow          = errors.New("malformed requirement row")
	ErrImageNotFound         = errors.New("image not found")
	ErrFinalized             = errors.New("package already finalized")
	ErrUnknownSlideKind      = errors.New("unknown slide kind")
)
