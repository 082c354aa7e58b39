package audit

import "unicode/utf8"

// MaxTextLength caps every stored text field, counted in characters.
const MaxTextLength = 10000

// TruncationMarker is appended to text fields cut at MaxTextLength.
const TruncationMarker = "... [TRUNCATED]"

// TruncateText returns s unchanged when it is at most MaxTextLength characters,
// otherwise the first MaxTextLength characters followed by TruncationMarker.
func TruncateText(s string) string {
	if len(s) <= MaxTextLength || utf8.RuneCountInString(s) <= MaxTextLength {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxTextLength {
			return s[:i] + TruncationMarker
		}
		n++
	}
	return s
}

func truncatePtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := TruncateText(*s)
	return &t
}

// Truncated returns a copy of r with every text field capped.
func (r Record) Truncated() Record {
	r.RequestID = TruncateText(r.RequestID)
	r.Method = TruncateText(r.Method)
	r.URL = TruncateText(r.URL)
	r.RequestHeaders = TruncateText(r.RequestHeaders)
	r.RequestBody = truncatePtr(r.RequestBody)
	r.ResponseHeaders = truncatePtr(r.ResponseHeaders)
	r.ResponseBody = truncatePtr(r.ResponseBody)
	r.ErrorMessage = truncatePtr(r.ErrorMessage)
	r.ExceptionName = truncatePtr(r.ExceptionName)
	r.CorrelationID = truncatePtr(r.CorrelationID)
	r.UserID = TruncateText(r.UserID)
	return r
}
