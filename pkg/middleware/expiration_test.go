package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/worldtrends/explorer/internal/test"
	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/env/user"
)

func TestExpiration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       *user.Env
		code        int
		body        string
	}{
		{
			"access has not expired",
			&user.Env{Expiration: time.Now().AddDate(0, 0, 1)},
			200,
			``,
		},
		{
			"access has expired",
			&user.Env{Expiration: time.Now().AddDate(0, 0, -1)},
			403,
			`{"error":"Administrative access has expired","api_version":"1.1.0"}`,
		},
		{
			"no expiration date",
			&user.Env{},
			200,
			``,
		},
		{
			"no user configuration",
			nil,
			200,
			``,
		},
	}

	dummyHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			var body bytes.Buffer

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", &bytes.Buffer{})

			logger := test.DummyLogger(io.Discard).Sugar()

			aux := &explorer.Config{Logger: logger, UserEnv: tc.given}
			Expiration(aux)(dummyHandler).ServeHTTP(w, r)

			actual := w.Result()
			defer func() { _ = actual.Body.Close() }()

			_, _ = io.Copy(&body, actual.Body)

			assert.Equal(t, tc.code, actual.StatusCode)
			assert.Contains(t, body.String(), tc.body)
		})
	}
}
