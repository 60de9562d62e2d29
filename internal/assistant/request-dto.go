package assistant

// UtteranceRequest carries one recognized utterance. Confidence comes from the
// speech recognizer; when it is below the configured cutoff the text is not
// trusted and the user is asked to repeat.
type UtteranceRequest struct {
	Text       string   `json:"text" binding:"required"`
	Confidence *float64 `json:"confidence,omitempty" binding:"omitempty,gte=0,lte=1"`
}
