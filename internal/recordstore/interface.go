package recordstore

import (
	"context"
	"fmt"

	"github.com/commonsgame/commons-go/internal/model"
)

// Tag is a discovery key a record can be filed under. Tags are the
// anchor/fan-out index of the replicated store: appending under a tag
// makes the record listable by every peer that knows the tag.
type Tag string

// TagGameCodes indexes all game code anchors
func TagGameCodes() Tag {
	return "game_codes"
}

// TagPlayers indexes the registrations under a game code anchor
func TagPlayers(anchorRef model.Ref) Tag {
	return Tag(fmt.Sprintf("players:%s", anchorRef))
}

// TagSessions indexes the sessions started under a game code anchor
func TagSessions(anchorRef model.Ref) Tag {
	return Tag(fmt.Sprintf("sessions:%s", anchorRef))
}

// TagRounds indexes the rounds of a session
func TagRounds(sessionRef model.Ref) Tag {
	return Tag(fmt.Sprintf("rounds:%s", sessionRef))
}

// TagSuccessors indexes the successor candidates of a round: the next
// round or the terminal game result. A round with anything under this
// tag is closed.
func TagSuccessors(roundRef model.Ref) Tag {
	return Tag(fmt.Sprintf("succ:%s", roundRef))
}

// TagMoves indexes the moves made within a round
func TagMoves(roundRef model.Ref) Tag {
	return Tag(fmt.Sprintf("moves:%s", roundRef))
}

// TagResults indexes the terminal results of a session
func TagResults(sessionRef model.Ref) Tag {
	return Tag(fmt.Sprintf("results:%s", sessionRef))
}

// Store is the replicated record store every peer reads and writes.
//
// Records are immutable and append-only: once a record is observed it
// never changes or disappears. Visibility of other peers' appends is
// eventual and monotonic, so list operations return best-effort
// snapshots that only ever grow between calls. Appending content that
// is already present is a no-op returning the existing reference.
type Store interface {
	// Append stores the record, files it under the given tags in one
	// atomic step, and returns its content address.
	Append(ctx context.Context, rec *Record, tags ...Tag) (model.Ref, error)

	// Fetch retrieves the record at the given reference.
	// Returns model.ErrRecordNotFound if it is not (yet) visible.
	Fetch(ctx context.Context, ref model.Ref) (*Record, error)

	// ListTag returns the currently visible records under a tag,
	// ordered by store sequence.
	ListTag(ctx context.Context, tag Tag) ([]*Record, error)

	// ListByAuthor returns the records of the given kind authored by
	// the given player, ordered by store sequence. A peer's own appends
	// are always visible to itself.
	ListByAuthor(ctx context.Context, author model.PlayerID, kind model.Kind) ([]*Record, error)
}
