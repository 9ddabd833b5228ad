package domain

import "fmt"

const (
	// WatchURLPrefix is prepended to a video ID to form its canonical URL.
	WatchURLPrefix = "https://www.youtube.com/watch?v="

	// ThumbnailURLFormat formats a video ID into its high quality thumbnail URL.
	ThumbnailURLFormat = "https://i.ytimg.com/vi/%s/hqdefault.jpg"
)

// VideoID is the platform identifier of a video, assigned by the discovery tool.
type VideoID string

// String returns the string representation of the VideoID.
func (id VideoID) String() string {
	return string(id)
}

// WatchURL returns the canonical page URL for the video.
func (id VideoID) WatchURL() string {
	return WatchURLPrefix + string(id)
}

// ThumbnailURL returns the thumbnail image URL for the video.
func (id VideoID) ThumbnailURL() string {
	return fmt.Sprintf(ThumbnailURLFormat, string(id))
}

// SearchResult is one video returned by a search.
type SearchResult struct {
	Title     string
	Channel   string
	Duration  string // preformatted label such as "3:25"
	ID        VideoID
	Thumbnail string
}

// NewSearchResult builds a SearchResult whose thumbnail is derived from id.
func NewSearchResult(id VideoID, title, channel, duration string) SearchResult {
	return SearchResult{
		Title:     title,
		Channel:   channel,
		Duration:  duration,
		ID:        id,
		Thumbnail: id.ThumbnailURL(),
	}
}

// URL returns the canonical page URL of the result.
func (r SearchResult) URL() string {
	return r.ID.WatchURL()
}

// FormatOption is one playable video variant of a single item.
type FormatOption struct {
	Resolution string // e.g. "1080p"
	Ext        string
	FPS        int
	ID         string // format_id, unique within one item's list
	VideoCodec string
}

// Key is the deduplication key of the option: resolution plus container.
func (f FormatOption) Key() string {
	return f.Resolution + "-" + f.Ext
}

// Selector returns the downloader format selector for the option: the video
// stream merged with the best audio, falling back to the best single file.
func (f FormatOption) Selector() string {
	return FormatSelector(f.ID)
}

// FormatSelector builds a selector for the given format ID.
func FormatSelector(formatID string) string {
	return formatID + "+bestaudio/best"
}
