package models

import "time"

// Poll type constants
const (
	TypeSingleChoice = "single-choice"
	TypeYesNo        = "yes/no"
	TypeRating       = "rating"
	TypeImageBased   = "image-based"
	TypeOpenEnded    = "open-ended"
)

// ValidPollType reports whether t is one of the known poll type tags.
func ValidPollType(t string) bool {
	switch t {
	case TypeSingleChoice, TypeYesNo, TypeRating, TypeImageBased, TypeOpenEnded:
		return true
	}
	return false
}

// ChoiceType reports whether polls of type t are voted on by option index.
// Everything except open-ended counts votes on options.
func ChoiceType(t string) bool {
	return t != TypeOpenEnded
}

// Request types

type RegisterRequest struct {
	FullName        string `json:"fullName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreatePollRequest struct {
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
}

// VoteRequest carries either an option selection or a free-text response,
// depending on the poll type. Rating polls submit the 1-indexed rating
// minus one as optionIndex.
type VoteRequest struct {
	OptionIndex  *int   `json:"optionIndex,omitempty"`
	ResponseText string `json:"responseText,omitempty"`
}

// Response types

type AuthResponse struct {
	ID    string      `json:"id"`
	User  UserProfile `json:"user"`
	Token string      `json:"token"`
}

type UploadImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type BookmarkResponse struct {
	PollID     string `json:"pollId"`
	Bookmarked bool   `json:"bookmarked"`
}

type PollListResponse struct {
	Polls   []Poll `json:"polls"`
	Page    int    `json:"page"`
	HasMore bool   `json:"hasMore"`
}

// Domain types

// User is the persisted user record. The password hash never leaves the server.
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// UserProfile is a User plus counters derived from the poll store at read
// time. The counters are never persisted on the user row.
type UserProfile struct {
	User
	TotalPollsCreated    int `json:"totalPollsCreated"`
	TotalPollsVotes      int `json:"totalPollsVotes"`
	TotalPollsBookmarked int `json:"totalPollsBookmarked"`
}

// CreatorSummary is the slice of a user embedded in poll payloads.
type CreatorSummary struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	FullName        string  `json:"fullName"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}

type Option struct {
	Index    int     `json:"index"`
	Label    string  `json:"optionText"`
	ImageURL *string `json:"imageUrl,omitempty"`
	Votes    int     `json:"votes"`
}

// PollResponse is a free-text answer to an open-ended poll.
type PollResponse struct {
	ID           string    `json:"id"`
	VoterID      string    `json:"voterId"`
	ResponseText string    `json:"responseText"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Poll struct {
	ID           string         `json:"id"`
	Question     string         `json:"question"`
	Type         string         `json:"type"`
	Options      []Option       `json:"options"`
	Responses    []PollResponse `json:"responses"`
	Voters       []string       `json:"voters"`
	Creator      CreatorSummary `json:"creator"`
	Closed       bool           `json:"closed"`
	CreatedAt    time.Time      `json:"createdAt"`
	UserHasVoted bool           `json:"userHasVoted"`
	Bookmarked   bool           `json:"bookmarked"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
