package domain

// Profile is the public view of an Instagram account.
type Profile struct {
	Username      string `json:"username"`
	UserID        int64  `json:"user_id"`
	FullName      string `json:"full_name"`
	Biography     string `json:"biography,omitempty"`
	ProfilePicURL string `json:"profile_pic_url"`
	ExternalURL   string `json:"external_url,omitempty"`
	IsPrivate     bool   `json:"is_private"`
	IsVerified    bool   `json:"is_verified"`
	IsBusiness    bool   `json:"is_business"`
	Followers     int    `json:"followers"`
	Following     int    `json:"following"`
	MediaCount    int    `json:"media_count"`
}

// ProfileSummary is the short form used in follower/following listings.
type ProfileSummary struct {
	Username   string `json:"username"`
	UserID     int64  `json:"user_id"`
	FullName   string `json:"full_name,omitempty"`
	IsPrivate  bool   `json:"is_private"`
	IsVerified bool   `json:"is_verified"`
}
