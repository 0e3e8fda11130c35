package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrCacheMiss       = errors.New("cache miss")
	ErrUpstream        = errors.New("upstream error")
	ErrNoSetlists      = errors.New("no setlists returned")
	ErrUnknownSource   = errors.New("unknown setlist source")
	ErrDuplicateSource = errors.New("setlist source already registered")
)

// CacheEntry is a stored upstream payload together with the time it was
// fetched and the page it belongs to.
type CacheEntry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	Page      int             `json:"page"`
}

// CacheInfo describes the state of a cached payload.
type CacheInfo struct {
	Key    string `json:"key"`
	Exists bool   `json:"exists"`
	Age    string `json:"age,omitempty"`
	Valid  bool   `json:"valid"`
	Page   int    `json:"page,omitempty"`
}
