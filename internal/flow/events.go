package flow

// Activity-log event kinds.
const (
	EventCardViewed          = "card_viewed"
	EventChallengeSubmitted  = "challenge_submitted"
	EventNarrationCompleted  = "narration_completed"
	EventAssessmentCompleted = "assessment_completed"
)
