// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LookupRequest is the canonical inbound shape. Each transport channel
// builds one at its boundary; nothing inside the pipeline ever sees a
// platform-specific payload.
type LookupRequest interface {
	// CreatedAt is the message timestamp, used as the as-of time for
	// delta calculations.
	CreatedAt() time.Time

	// ID identifies the originating message on its channel, when the
	// channel has one. Persisted so later lookups can link back.
	ID() string

	StringTokens() []string

	// LegacyStringTokens feeds the older plate:/state: marker syntax,
	// which tolerates looser whitespace than the colon-tuple form.
	LegacyStringTokens() []string

	UserID() string

	// RequiresResponse distinguishes user-facing lookups from
	// administrative backfills, which are stored as non-countable.
	RequiresResponse() bool

	SourceChannel() string
}

// message is the shared variant backing; constructors differ only in how
// they fill it.
type message struct {
	id        string
	createdAt time.Time
	text      string
	userID    string
	channel   string
	responds  bool
}

func (m message) CreatedAt() time.Time   { return m.createdAt }
func (m message) ID() string             { return m.id }
func (m message) UserID() string         { return m.userID }
func (m message) RequiresResponse() bool { return m.responds }
func (m message) SourceChannel() string  { return m.channel }

func (m message) StringTokens() []string { return strings.Fields(m.text) }

// Both syntaxes tokenize on whitespace today; the split is kept separate
// so a channel with its own tokenization can override one without the
// other.
func (m message) LegacyStringTokens() []string { return strings.Fields(m.text) }

// NewAPIRequest adapts the HTTP transport's message shape.
func NewAPIRequest(text, requesterID, sourceChannel string) LookupRequest {
	if sourceChannel == "" {
		sourceChannel = "api"
	}
	return message{
		id:        uuid.NewString(),
		createdAt: time.Now().UTC(),
		text:      text,
		userID:    requesterID,
		channel:   sourceChannel,
		responds:  true,
	}
}

// NewCLIRequest adapts a command-line invocation; args are joined into
// one message text.
func NewCLIRequest(args []string) LookupRequest {
	return message{
		id:        uuid.NewString(),
		createdAt: time.Now().UTC(),
		text:      strings.Join(args, " "),
		userID:    "cli",
		channel:   "cli",
		responds:  true,
	}
}

// NewBatchRequest adapts one entry of a batch file into a single-vehicle
// message. Batch runs are administrative: stored lookups are written but
// flagged non-countable so they never disturb delta narratives.
func NewBatchRequest(plate, state, plateTypes string) LookupRequest {
	text := state + ":" + plate
	if plateTypes != "" {
		text += ":" + plateTypes
	}
	return message{
		id:        uuid.NewString(),
		createdAt: time.Now().UTC(),
		text:      text,
		userID:    "batch",
		channel:   "batch",
		responds:  false,
	}
}
