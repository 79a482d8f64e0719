// Package route holds the routing entries that map a logical service name to
// the queue and worker endpoint receiving its tasks.
package route

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const MaxDeadlineSeconds = 3600

// Entry describes how to deliver work for one logical service.
type Entry struct {
	queueID         string
	targetURL       string
	audience        string
	deadlineSeconds int
}

// NewEntry validates its arguments. An empty audience defaults to the origin
// of targetURL.
func NewEntry(queueID, targetURL, audience string, deadlineSeconds int) (Entry, error) {
	e := Entry{
		queueID:         strings.TrimSpace(queueID),
		targetURL:       strings.TrimSpace(targetURL),
		audience:        strings.TrimSpace(audience),
		deadlineSeconds: deadlineSeconds,
	}

	if err := e.Validate(); err != nil {
		return Entry{}, err
	}

	if e.audience == "" {
		u, _ := url.Parse(e.targetURL)
		e.audience = u.Scheme + "://" + u.Host
	}

	return e, nil
}

func (e Entry) QueueID() string {
	return e.queueID
}

func (e Entry) TargetURL() string {
	return e.targetURL
}

func (e Entry) Audience() string {
	return e.audience
}

func (e Entry) DefaultDeadlineSeconds() int {
	return e.deadlineSeconds
}

func (e Entry) DefaultDeadline() time.Duration {
	return time.Duration(e.deadlineSeconds) * time.Second
}

func (e Entry) Validate() error {
	if e.queueID == "" {
		return ErrQueueIDRequired
	}

	if err := validateTargetURL(e.targetURL); err != nil {
		return err
	}

	if e.audience != "" {
		if u, err := url.Parse(e.audience); err != nil || u.Scheme == "" {
			return fmt.Errorf("%w: %q", ErrAudienceInvalid, e.audience)
		}
	}

	if !ValidDeadlineSeconds(e.deadlineSeconds) {
		return fmt.Errorf("%w: got %d", ErrDeadlineOutOfRange, e.deadlineSeconds)
	}

	return nil
}

// ValidDeadlineSeconds reports whether s lies in (0, MaxDeadlineSeconds].
func ValidDeadlineSeconds(s int) bool {
	return s > 0 && s <= MaxDeadlineSeconds
}

func validateTargetURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: target URL is empty", ErrTargetURLInvalid)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTargetURLInvalid, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got: %s", ErrTargetURLInvalid, u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("%w: host is empty", ErrTargetURLInvalid)
	}

	return nil
}
