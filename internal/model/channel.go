package model

// ChannelEntry is one video in a channel's upload listing.
type ChannelEntry struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// ChannelPage is one page of a channel listing. NextPage is an opaque token
// for the following page; empty means the listing is exhausted.
type ChannelPage struct {
	Entries  []ChannelEntry `json:"entries"`
	NextPage string         `json:"next_page,omitempty"`
}
