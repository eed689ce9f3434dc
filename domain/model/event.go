package model

import "time"

type ActivityType string

const (
	ActivityVideoPublished      ActivityType = "video.published"
	ActivityTweetCreated        ActivityType = "tweet.created"
	ActivityCommentCreated      ActivityType = "comment.created"
	ActivityLikeToggled         ActivityType = "like.toggled"
	ActivitySubscriptionToggled ActivityType = "subscription.toggled"
)

// ActivityEvent is emitted after a successful write. TargetUserID is the user
// the event is about (video owner, channel), empty when nobody is notified.
type ActivityEvent struct {
	Type         ActivityType      `json:"type"`
	ActorID      string            `json:"actorId"`
	SubjectID    string            `json:"subjectId"`
	TargetUserID string            `json:"targetUserId,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty"`
	OccurredAt   time.Time         `json:"occurredAt"`
}
