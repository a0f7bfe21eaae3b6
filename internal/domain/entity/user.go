package entity

import "time"

type User struct {
	ID        string   `json:"id" firestore:"id"`
	Email     string   `json:"email" firestore:"email"`
	Username  string   `json:"username" firestore:"username"`
	FirstName string   `json:"first_name" firestore:"firstName"`
	LastName  string   `json:"last_name" firestore:"lastName"`
	Bio       string   `json:"bio,omitempty" firestore:"bio,omitempty"`
	Avatar    string   `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	Age       int      `json:"age,omitempty" firestore:"age,omitempty"`
	Location  string   `json:"location,omitempty" firestore:"location,omitempty"`
	Interests []string `json:"interests,omitempty" firestore:"interests,omitempty"`

	IsOnline bool      `json:"is_online" firestore:"isOnline"`
	LastSeen time.Time `json:"last_seen" firestore:"lastSeen"`

	Friends        []string        `json:"friends,omitempty" firestore:"friends,omitempty"`
	FriendRequests []FriendRequest `json:"friend_requests,omitempty" firestore:"friendRequests,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

type FriendRequest struct {
	ID        string    `json:"id" firestore:"id"`
	From      string    `json:"from" firestore:"from"`
	Status    string    `json:"status" firestore:"status"` // "pending", "accepted", "rejected"
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
	FriendRequestRejected = "rejected"
)

// UserSummary is the public subset of a profile embedded in conversation
// lists, friend lists and search results.
type UserSummary struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Avatar    string    `json:"avatar,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	IsOnline  bool      `json:"is_online"`
	LastSeen  time.Time `json:"last_seen"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
		Bio:       u.Bio,
		IsOnline:  u.IsOnline,
		LastSeen:  u.LastSeen,
	}
}

func (u *User) IsFriendsWith(userID string) bool {
	for _, id := range u.Friends {
		if id == userID {
			return true
		}
	}
	return false
}
