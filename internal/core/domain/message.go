package domain

import "errors"

var ErrMessageNotFound = errors.New("message not found")
var ErrStorage = errors.New("storage failure")

// Message is one row of the append-only message log. IDs are assigned by the
// store, strictly increasing and never reused; the timestamp (milliseconds
// since epoch) is assigned at insert time. Both are immutable afterwards.
//
// A text upload and a file upload in the same request produce two independent
// rows: the file row carries the original file name in Text and the public
// serving path in FilePath.
type Message struct {
	ID        int64  `json:"message_id"`
	Timestamp int64  `json:"time_stamp"`
	Text      string `json:"message_text"`
	FilePath  string `json:"file_path,omitempty"`
	ClientID  string `json:"client_id"`
	UserID    string `json:"user_id"`
}

// Notification is the payload fanned out to a user's open subscription
// channels after a message row is committed.
type Notification struct {
	MessageID int64  `json:"message_id"`
	Timestamp int64  `json:"time_stamp"`
	Text      string `json:"message_text"`
	FilePath  string `json:"file_path,omitempty"`
}
