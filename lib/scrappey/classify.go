package scrappey

import "strings"

// Classifier maps a vendor error code and message onto an ErrorKind. The
// vendor's error text is not contractually stable, so the matching rules
// are plain data that callers may swap for their own via
// ClientOptions.Classifier.
type Classifier struct {
	// AuthCodes are vendor codes that mean the API key is unusable.
	AuthCodes []string
	// TimeoutKeywords are matched case-insensitively against the error
	// message.
	TimeoutKeywords []string
}

// DefaultClassifier matches the error shapes the vendor emits today:
// CODE-0001 for invalid credentials and "timeout" somewhere in the message
// for deadline failures.
var DefaultClassifier = Classifier{
	AuthCodes:       []string{"CODE-0001"},
	TimeoutKeywords: []string{"timeout"},
}

func (cl Classifier) Classify(code, message string) ErrorKind {
	for _, c := range cl.AuthCodes {
		if code == c {
			return KindAuth
		}
	}
	lower := strings.ToLower(message)
	for _, kw := range cl.TimeoutKeywords {
		if strings.Contains(lower, kw) {
			return KindTimeout
		}
	}
	return KindRequest
}
