package sink

import "errors"

var ErrOpenSink = errors.New("failed to open sink")
