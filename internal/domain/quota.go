package domain

import "time"

// QuotaRecord is the cumulative usage counter for one anonymous identity
// (a client IP). Created on first request, incremented on each allowed
// request, never reset by the application.
type QuotaRecord struct {
	Identity   string
	Count      int
	LastActive time.Time
}

// GuestStatus is the read-only view of a guest's remaining quota.
type GuestStatus struct {
	Used          int  `json:"used"`
	Remaining     int  `json:"remaining"`
	LimitExceeded bool `json:"isLimitExceeded"`
}
