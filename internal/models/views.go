package models

// View types are the denormalized response objects assembled by the entity
// readers. JSON field names follow the client wire format (camelCase).

// UserProfile is the public slice of a user record.
type UserProfile struct {
	UserID    uint   `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Bio       string `json:"bio"`
	ImageURL  string `json:"imageUrl"`
}

// FollowOverview carries the viewer-relative follow flag and the target's
// follower count.
type FollowOverview struct {
	IsFollowing bool  `json:"isFollowing"`
	Count       int64 `json:"count"`
}

// UserOverview aggregates relationship data for a user view.
type UserOverview struct {
	Follow FollowOverview `json:"follow"`
}

// UserView is the merged response for a user as seen by a viewer.
type UserView struct {
	User     UserProfile  `json:"user"`
	Overview UserOverview `json:"overview"`
}

// ThreadContent is the content block of a thread view.
type ThreadContent struct {
	ThreadID  uint     `json:"threadId"`
	Text      string   `json:"text"`
	ImageURLs []string `json:"imageUrls"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}

// FavoriteOverview carries the favorite count and the viewer-relative flag.
type FavoriteOverview struct {
	Count       int64 `json:"count"`
	IsFavorited bool  `json:"isFavorited"`
}

// ReplyOverview carries the reply count.
type ReplyOverview struct {
	Count int64 `json:"count"`
}

// ThreadOverview aggregates engagement data for a thread view.
type ThreadOverview struct {
	Favorite FavoriteOverview `json:"favorite"`
	Reply    ReplyOverview    `json:"reply"`
}

// ThreadView is the merged response for a thread as seen by a viewer.
type ThreadView struct {
	Content  ThreadContent  `json:"content"`
	User     UserView       `json:"user"`
	Overview ThreadOverview `json:"overview"`
}

// FollowActivity is a list entry for follower/following listings: the user
// view plus the time the follow edge was created.
type FollowActivity struct {
	User       UserView `json:"user"`
	FollowedAt int64    `json:"followedAt"`
}
