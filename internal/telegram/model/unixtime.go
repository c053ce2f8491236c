package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// UnixTime is a point in time encoded on the wire as whole seconds since the
// unix epoch. Decoded values are always in UTC. Sub-second parts are dropped
// when encoding, so build values with Unix or At if they must survive a round
// trip unchanged; Equal already ignores them.
type UnixTime struct {
	time.Time
}

// Unix returns the UnixTime for sec seconds since the epoch.
func Unix(sec int64) UnixTime {
	return UnixTime{Time: time.Unix(sec, 0).UTC()}
}

// At truncates t to whole seconds.
func At(t time.Time) UnixTime {
	return Unix(t.Unix())
}

// Equal reports whether both values name the same second.
func (t UnixTime) Equal(u UnixTime) bool {
	return t.Unix() == u.Unix()
}

func (t UnixTime) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, t.Unix(), 10), nil
}

func (t *UnixTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var sec int64
	if err := json.Unmarshal(data, &sec); err != nil {
		return err
	}
	*t = Unix(sec)
	return nil
}

// optionalUnix maps the wire convention "0 means not set" onto a nil pointer.
func optionalUnix(sec int64) *UnixTime {
	if sec == 0 {
		return nil
	}
	t := Unix(sec)
	return &t
}

func unixSeconds(t *UnixTime) int64 {
	if t == nil {
		return 0
	}
	return t.Unix()
}
