package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ceptevar-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Remaining *int   `json:"attempts_remaining,omitempty"`
	ExpiresIn int    `json:"expires_in,omitempty"`
}

// AuthEnvelope wraps login and register responses.
type AuthEnvelope struct {
	Bearer  string         `json:"Bearer,omitempty"`
	User    *domain.User   `json:"user,omitempty"`
	Seller  *domain.Seller `json:"seller,omitempty"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// PaginatedUsersEnvelope wraps cursor-paginated user list responses.
type PaginatedUsersEnvelope struct {
	Data       []domain.User `json:"data"`
	NextCursor string        `json:"next_cursor,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// FollowedSellersEnvelope wraps the list of stores a user follows.
type FollowedSellersEnvelope struct {
	Sellers []domain.Seller `json:"followed_sellers"`
	Count   int             `json:"count"`
}

// FollowersCountEnvelope carries a store's follower count.
type FollowersCountEnvelope struct {
	FollowersCount int `json:"followers_count"`
}

// UploadEnvelope wraps image upload responses.
type UploadEnvelope struct {
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
