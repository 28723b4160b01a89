package domain

import "time"

// ClearanceEntry is one resolved request from the historical ledger of
// cleared blocks: the date a block was reissued and its size class.
// The ledger is an external input and is not retained beyond rate estimation.
type ClearanceEntry struct {
	Resolved time.Time // date the block was reissued
	Class    int       // size class parsed from the CIDR prefix
}
