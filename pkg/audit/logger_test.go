package audit

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/worldtrends/explorer/internal/test"
)

func TestNewLoggerAudit(t *testing.T) {
	logger := test.DummyLogger(io.Discard).Sugar()

	actual := NewLoggerAudit(logger)

	assert.NotNil(t, actual)
	assert.IsType(t, &LoggerAudit{}, actual)
}

func TestLoggingAuditWrite(t *testing.T) {
	cases := []struct {
		description string
		given       RequestData
		output      *regexp.Regexp
	}{
		{
			"request data with all fields set",
			RequestData{Endpoint: "search", Query: "golang", Geo: "US", User: "test", Timestamp: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).Unix()},
			regexp.MustCompile(`AUDIT\s{"Endpoint": "search", "Query": "golang", "Geo": "US", "User": "test", "Timestamp": 1672531200}`),
		},
		{
			"anonymous request without a country",
			RequestData{Endpoint: "trending", Timestamp: time.Now().Unix()},
			regexp.MustCompile(`AUDIT\s{"Endpoint": "trending", "Query": "", "Geo": "", "User": "", "Timestamp": \d{10}}`),
		},
		{
			"invalid request data with nothing set",
			RequestData{},
			regexp.MustCompile(`AUDIT\s{"Endpoint": "", "Query": "", "Geo": "", "User": "", "Timestamp": 0}`),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			var output bytes.Buffer

			logger := test.DummyLogger(&output).Sugar()

			audit := &LoggerAudit{Logger: logger}
			err := audit.Write(context.TODO(), &tc.given)

			assert.Nil(t, err)
			assert.Regexp(t, tc.output, output.String())
		})
	}
}
