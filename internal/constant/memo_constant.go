package constant

const (
	// MemoUnavailableText replaces the memo body when neither the standard
	// nor the agreement yielded a single retrieved passage.
	MemoUnavailableText = "A memo cannot be drafted yet: no supporting material could be retrieved from the selected standard or the uploaded agreement. Index the agreement or verify the standard corpus, then regenerate."

	// SeededQuestionPreamble introduces the assistant turn that carries
	// gap-derived questions.
	SeededQuestionPreamble = "To complete the memo, I still need the following:"

	// SessionEventsTopic is the in-process topic bridging services to the
	// websocket hub.
	SessionEventsTopic = "session_events"
)
