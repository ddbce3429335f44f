package explorer

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduction(t *testing.T) {
	cases := []struct {
		description string
		given       func()
		want        bool
	}{
		{
			"environment variable value set to production",
			func() {
				t.Setenv("ENVIRONMENT", "production")
			},
			true,
		},
		{
			"environment variable value set to other environment",
			func() {
				t.Setenv("ENVIRONMENT", "test")
			},
			false,
		},
		{
			"environment variable not set",
			func() {
				// No-op.
			},
			false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Cleanup(func() {
				os.Clearenv()
			})

			tc.given()

			assert.Equal(t, tc.want, Production())
		})
	}
}

func TestDebug(t *testing.T) {
	cases := []struct {
		description string
		given       func()
		want        bool
	}{
		{
			"debug enabled with DEBUG",
			func() {
				t.Setenv("DEBUG", "true")
			},
			true,
		},
		{
			"debug enabled with FLASK_DEBUG",
			func() {
				t.Setenv("FLASK_DEBUG", "True")
			},
			true,
		},
		{
			"debug disabled with false value",
			func() {
				t.Setenv("FLASK_DEBUG", "false")
			},
			false,
		},
		{
			"debug disabled with malformed value",
			func() {
				t.Setenv("DEBUG", "yes please")
			},
			false,
		},
		{
			"debug not set",
			func() {
				// No-op.
			},
			false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Cleanup(func() {
				os.Clearenv()
			})

			tc.given()

			assert.Equal(t, tc.want, Debug())
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	cases := []struct {
		description string
		given       func()
		want        time.Duration
	}{
		{
			"overridden duration with environment variable value with unit",
			func() {
				t.Setenv("REQUEST_TIMEOUT", "5s")
			},
			5 * time.Second,
		},
		{
			"overridden duration with environment variable value without unit",
			func() {
				t.Setenv("REQUEST_TIMEOUT", "5")
			},
			5 * time.Second,
		},
		{
			"default duration with malformed value",
			func() {
				t.Setenv("REQUEST_TIMEOUT", "soon")
			},
			30 * time.Second,
		},
		{
			"default duration with zero value",
			func() {
				t.Setenv("REQUEST_TIMEOUT", "0")
			},
			30 * time.Second,
		},
		{
			"default duration with environment variable not set",
			func() {
				// No-op.
			},
			30 * time.Second,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Cleanup(func() {
				os.Clearenv()
			})

			tc.given()

			assert.Equal(t, tc.want, RequestTimeout())
		})
	}
}

func TestParseDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       string
		expected    time.Duration
		error       bool
		want        string
	}{
		{
			"valid duration value with unit",
			"5s",
			5 * time.Second,
			false,
			``,
		},
		{
			"valid negative duration value without unit",
			"-5",
			5 * time.Second,
			false,
			``,
		},
		{
			"valid negative duration value with unit",
			"-5s",
			5 * time.Second,
			false,
			``,
		},
		{
			"invalid floating point duration value without unit",
			"1.234",
			0,
			true,
			`unable to parse duration: time: missing unit in duration "1.234"`,
		},
		{
			"invalid empty duration value",
			"",
			0,
			true,
			`unable to parse duration: time: invalid duration ""`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			actual, err := parseDuration(tc.given)

			if tc.error {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.want)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.expected, actual)
		})
	}
}
