package scrappey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultClassifier(t *testing.T) {
	cases := []struct {
		name    string
		code    string
		message string
		want    ErrorKind
	}{
		{"AuthCode", "CODE-0001", "invalid api key", KindAuth},
		{"AuthCodeWinsOverTimeoutMessage", "CODE-0001", "key validation timeout", KindAuth},
		{"TimeoutLower", "CODE-0002", "request timeout", KindTimeout},
		{"TimeoutMixedCase", "CODE-0002", "Navigation Timeout Exceeded", KindTimeout},
		{"PlainFailure", "CODE-0500", "browser crashed", KindRequest},
		{"EmptyEverything", "", "", KindRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DefaultClassifier.Classify(tc.code, tc.message))
		})
	}
}

func TestCustomClassifier(t *testing.T) {
	custom := Classifier{
		AuthCodes:       []string{"CODE-0001", "CODE-0099"},
		TimeoutKeywords: []string{"timeout", "deadline"},
	}
	require.Equal(t, KindAuth, custom.Classify("CODE-0099", ""))
	require.Equal(t, KindTimeout, custom.Classify("CODE-0500", "Deadline exceeded"))
	require.Equal(t, KindRequest, custom.Classify("CODE-0500", "no match"))
}

func TestErrorFormatting(t *testing.T) {
	err := &Error{
		Kind:     KindRequest,
		Code:     "CODE-0500",
		Message:  "browser crashed",
		Attempts: 4,
	}
	require.Equal(t, "scrappey [CODE-0500]: failed after 4 attempts: browser crashed", err.Error())

	single := &Error{Kind: KindAuth, Code: "CODE-0001", Message: "invalid api key", Attempts: 1}
	require.Equal(t, "scrappey [CODE-0001]: invalid api key", single.Error())

	noCode := &Error{Kind: KindTimeout, Message: "context deadline exceeded"}
	require.Equal(t, "scrappey: context deadline exceeded", noCode.Error())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Kind: KindRequest, cause: cause}
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "connection refused")
}

func TestRetryable(t *testing.T) {
	require.False(t, (&Error{Kind: KindAuth}).Retryable())
	require.True(t, (&Error{Kind: KindTimeout}).Retryable())
	require.True(t, (&Error{Kind: KindRequest}).Retryable())
}
