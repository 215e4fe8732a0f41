package redis

import "strconv"

const (
	// KeyPrefixBookmark is the prefix for bookmark keys
	KeyPrefixBookmark = "vmark:bookmark:"
	// KeyAllBookmarks is the key for the set of all bookmark IDs
	KeyAllBookmarks = "vmark:bookmarks:all"
	// KeySequence is the INCR counter that assigns bookmark IDs
	KeySequence = "vmark:bookmarks:seq"
)

// BookmarkKey returns the Redis key for a bookmark by ID
func BookmarkKey(id int64) string {
	return KeyPrefixBookmark + strconv.FormatInt(id, 10)
}

// AllBookmarksKey returns the key for the set of all bookmark IDs
func AllBookmarksKey() string {
	return KeyAllBookmarks
}
