package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

type Field func(*bolt.Event) *bolt.Event

func Panel(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("panel", name)
	}
}

func Bars(count int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("bars", count)
	}
}

func Source(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("source", name)
	}
}

func RequestID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("request_id", id)
	}
}

func Method(method string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("method", method)
	}
}

func Path(path string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("path", path)
	}
}

func Status(code int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("status", code)
	}
}

func Addr(addr string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("addr", addr)
	}
}

func Cached(cached bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("cached", cached)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}
