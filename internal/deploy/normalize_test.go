package deploy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSubmitResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want SubmitResult
	}{
		{"success true", `{"success": true}`, SubmitResult{OK: true}},
		{"misspelled succes true", `{"succes": true}`, SubmitResult{OK: true}},
		{"either field suffices", `{"success": false, "succes": true}`, SubmitResult{OK: true}},
		{"truthy number", `{"success": 1}`, SubmitResult{OK: true}},
		{"truthy string", `{"success": "yes"}`, SubmitResult{OK: true}},
		{"success wins over error", `{"success": true, "error": "ignored"}`, SubmitResult{OK: true}},
		{"backend error verbatim", `{"error": "quota exceeded"}`, SubmitResult{Message: "quota exceeded"}},
		{"false with error", `{"success": false, "error": "docker daemon unavailable"}`, SubmitResult{Message: "docker daemon unavailable"}},
		{"false without error", `{"success": false}`, SubmitResult{Message: MsgBuildFailed}},
		{"empty error string", `{"success": false, "error": ""}`, SubmitResult{Message: MsgBuildFailed}},
		{"zero is falsy", `{"success": 0}`, SubmitResult{Message: MsgBuildFailed}},
		{"validation detail only", `{"detail": [{"msg": "field required"}]}`, SubmitResult{Message: MsgBuildFailed}},
		{"empty object", `{}`, SubmitResult{Message: MsgBuildFailed}},
		{"array body", `[1,2]`, SubmitResult{Message: MsgBuildFailed}},
		{"json null", `null`, SubmitResult{Message: MsgSubmitFailed}},
		{"not json", `<html>502 Bad Gateway</html>`, SubmitResult{Message: MsgSubmitFailed}},
		{"empty body", ``, SubmitResult{Message: MsgSubmitFailed}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeSubmitResponse([]byte(tt.body)))
		})
	}
}

func TestParseApps(t *testing.T) {
	t.Run("full entry", func(t *testing.T) {
		apps, err := parseApps([]byte(`{"apps":[{"app_name":"demo","url":"http://gw/app/demo","port":3000,"framework":"vite","env_vars":{"FOO":"bar"},"status":"running"}]}`))
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, DeployedApp{
			AppName:   "demo",
			URL:       "http://gw/app/demo",
			Port:      3000,
			Framework: "vite",
			EnvVars:   map[string]string{"FOO": "bar"},
			Status:    "running",
		}, apps[0])
	})

	t.Run("empty list", func(t *testing.T) {
		apps, err := parseApps([]byte(`{"apps":[]}`))
		require.NoError(t, err)
		assert.NotNil(t, apps)
		assert.Empty(t, apps)
	})

	t.Run("missing apps field", func(t *testing.T) {
		apps, err := parseApps([]byte(`{}`))
		require.NoError(t, err)
		assert.Empty(t, apps)
	})

	t.Run("apps not an array", func(t *testing.T) {
		apps, err := parseApps([]byte(`{"apps":{"demo":{}}}`))
		require.NoError(t, err)
		assert.Empty(t, apps)
	})

	t.Run("order preserved and non-objects skipped", func(t *testing.T) {
		apps, err := parseApps([]byte(`{"apps":[{"app_name":"b"},"junk",{"app_name":"a","env_vars":"nope"}]}`))
		require.NoError(t, err)
		require.Len(t, apps, 2)
		assert.Equal(t, "b", apps[0].AppName)
		assert.Equal(t, "a", apps[1].AppName)
		assert.Empty(t, apps[1].EnvVars)
	})

	t.Run("null body", func(t *testing.T) {
		_, err := parseApps([]byte(`null`))
		assert.ErrorIs(t, err, errNullBody)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseApps([]byte(`Internal Server Error`))
		assert.Error(t, err)
	})
}

func TestParseFramework(t *testing.T) {
	f, ok := ParseFramework("vite")
	assert.True(t, ok)
	assert.Equal(t, FrameworkVite, f)

	_, ok = ParseFramework("")
	assert.False(t, ok)
	_, ok = ParseFramework("Vite")
	assert.False(t, ok)
	_, ok = ParseFramework("react")
	assert.False(t, ok)

	assert.Equal(t, "Next.js", FrameworkNextJS.Label())
}
