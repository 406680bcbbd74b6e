// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

// User is the compact user record embedded in works and listings.
type User struct {
	ID                   int              `json:"id"`
	Name                 string           `json:"name"`
	Account              string           `json:"account"`
	ProfileImageURLs     ProfileImageURLs `json:"profile_image_urls"`
	Comment              string           `json:"comment,omitempty"`
	IsFollowed           bool             `json:"is_followed"`
	IsAccessBlockingUser bool             `json:"is_access_blocking_user,omitempty"`
}

// Profile is the extended profile block of a user detail response.
type Profile struct {
	Webpage                    string `json:"webpage"`
	Gender                     string `json:"gender"`
	Birth                      string `json:"birth"`
	BirthDay                   string `json:"birth_day"`
	BirthYear                  int    `json:"birth_year"`
	Region                     string `json:"region"`
	AddressID                  int    `json:"address_id"`
	CountryCode                string `json:"country_code"`
	Job                        string `json:"job"`
	JobID                      int    `json:"job_id"`
	TotalFollowUsers           int    `json:"total_follow_users"`
	TotalMypixivUsers          int    `json:"total_mypixiv_users"`
	TotalIllusts               int    `json:"total_illusts"`
	TotalManga                 int    `json:"total_manga"`
	TotalNovels                int    `json:"total_novels"`
	TotalIllustBookmarksPublic int    `json:"total_illust_bookmarks_public"`
	TotalIllustSeries          int    `json:"total_illust_series"`
	TotalNovelSeries           int    `json:"total_novel_series"`
	BackgroundImageURL         string `json:"background_image_url"`
	TwitterAccount             string `json:"twitter_account"`
	TwitterURL                 string `json:"twitter_url"`
	PawooURL                   string `json:"pawoo_url"`
	IsPremium                  bool   `json:"is_premium"`
	IsUsingCustomProfileImage  bool   `json:"is_using_custom_profile_image"`
}

// ProfilePublicity records which profile fields are public.
type ProfilePublicity struct {
	Gender    string `json:"gender"`
	Region    string `json:"region"`
	BirthDay  string `json:"birth_day"`
	BirthYear string `json:"birth_year"`
	Job       string `json:"job"`
	Pawoo     bool   `json:"pawoo"`
}

// Workspace describes the tools a user reports working with.
type Workspace struct {
	Pc                string `json:"pc"`
	Monitor           string `json:"monitor"`
	Tool              string `json:"tool"`
	Scanner           string `json:"scanner"`
	Tablet            string `json:"tablet"`
	Mouse             string `json:"mouse"`
	Printer           string `json:"printer"`
	Desktop           string `json:"desktop"`
	Music             string `json:"music"`
	Desk              string `json:"desk"`
	Chair             string `json:"chair"`
	Comment           string `json:"comment"`
	WorkspaceImageURL string `json:"workspace_image_url"`
}

// UserDetail is the full user detail response.
type UserDetail struct {
	User             User             `json:"user"`
	Profile          Profile          `json:"profile"`
	ProfilePublicity ProfilePublicity `json:"profile_publicity"`
	Workspace        Workspace        `json:"workspace"`
}

// UserPreview is one entry of a user listing: the user plus a sample of
// their recent works.
type UserPreview struct {
	User    User     `json:"user"`
	Illusts []Illust `json:"illusts"`
	Novels  []Novel  `json:"novels"`
	IsMuted bool     `json:"is_muted"`
}

func (p *UserPreview) attachClient(c *Client) {
	for idx := range p.Illusts {
		p.Illusts[idx].api = c
	}
}

// UserPreviews is a paginated user listing.
type UserPreviews struct {
	Page

	UserPreviews []UserPreview `json:"user_previews"`
}

func (l *UserPreviews) attachClient(c *Client) {
	for idx := range l.UserPreviews {
		l.UserPreviews[idx].attachClient(c)
	}
}

// AuthenticatedUser is the account record the auth endpoint returns.
type AuthenticatedUser struct {
	// The auth endpoint reports the id as a string.
	ID string `json:"id"`

	Name             string                     `json:"name"`
	Account          string                     `json:"account"`
	ProfileImageURLs AuthenticatedUserImageURLs `json:"profile_image_urls"`
	MailAddress      string                     `json:"mail_address"`
	IsMailAuthorized bool                       `json:"is_mail_authorized"`
	IsPremium        bool                       `json:"is_premium"`
	XRestrict        int                        `json:"x_restrict"`
}
