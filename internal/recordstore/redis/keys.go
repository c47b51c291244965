package redis

import (
	"fmt"

	"github.com/commonsgame/commons-go/internal/model"
	"github.com/commonsgame/commons-go/internal/recordstore"
)

// Key prefix for all record store data
const keyPrefix = "commons"

// recordKey returns the Redis key a record is stored at
func recordKey(ref model.Ref) string {
	return fmt.Sprintf("%s:rec:%s", keyPrefix, ref)
}

// tagKey returns the Redis key for a tag's fan-out set
func tagKey(tag recordstore.Tag) string {
	return fmt.Sprintf("%s:tag:%s", keyPrefix, tag)
}

// authorKey returns the Redis key for the author -> records index
func authorKey(author model.PlayerID, kind model.Kind) string {
	return fmt.Sprintf("%s:author:%s:%s", keyPrefix, author, kind)
}

// seqKey returns the Redis key of the global sequence counter
func seqKey() string {
	return fmt.Sprintf("%s:seq", keyPrefix)
}
