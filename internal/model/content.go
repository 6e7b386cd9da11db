package model

import (
	"time"

	"github.com/google/uuid"
)

// Notice is a free-text announcement shown on the public site.
type Notice struct {
	ID        uuid.UUID `json:"id"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoticeRequest is the payload for creating or updating a notice.
type NoticeRequest struct {
	Body string `json:"body" binding:"required,max=5000"`
}

// Concert is an upcoming performance listed on the public site.
type Concert struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Venue     string    `json:"venue"`
	Location  string    `json:"location"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConcertRequest is the payload for creating or updating a concert.
type ConcertRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Venue    string `json:"venue" binding:"required,max=200"`
	Location string `json:"location" binding:"omitempty,max=200"`
	Date     string `json:"date" binding:"required,isodate"`
	Time     string `json:"time" binding:"omitempty,clocktime"`
}
