package extractor

// ytdlpInfo mirrors fields from yt-dlp --dump-json output that we care about.
type ytdlpInfo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Uploader string `json:"uploader"`
	Ext      string `json:"ext"`
}

// flatEntry is one entry of a --flat-playlist listing.
type flatEntry struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	URL        string          `json:"url"`
	WebpageURL string          `json:"webpage_url"`
	Thumbnails []flatThumbnail `json:"thumbnails"`
}

type flatThumbnail struct {
	URL string `json:"url"`
}

// flatListing is the top-level object of `yt-dlp -J --flat-playlist`.
type flatListing struct {
	Entries []flatEntry `json:"entries"`
}

func (e flatEntry) videoURL() string {
	if e.URL != "" {
		return e.URL
	}
	return e.WebpageURL
}

func (e flatEntry) thumbnail() string {
	if len(e.Thumbnails) == 0 {
		return ""
	}
	// The last thumbnail yt-dlp reports is the largest.
	return e.Thumbnails[len(e.Thumbnails)-1].URL
}
