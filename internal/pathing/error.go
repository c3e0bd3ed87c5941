package pathing

import "errors"

// ErrNotPrefix occurs when a fragment is relativized against a base that is
// not a segment-wise prefix of it.
var ErrNotPrefix = errors.New("base is not a prefix of fragment")
