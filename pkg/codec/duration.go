package codec

import "time"

func durationOf(nanos uint64) time.Duration { return time.Duration(nanos) }
