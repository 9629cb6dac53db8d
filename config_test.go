package glasscube

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "Glasscube", cfg.Name)
	assert.Equal(t, ":3044", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 5*time.Minute, cfg.FeedTTL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 20.0, cfg.APIRate)
	assert.Equal(t, 10, cfg.APIBurst)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	err := os.WriteFile(path, []byte(`
name: My Site
api_url: https://api.example.com
feed_ttl: 30s
smtp:
  host: smtp.example.com
  port: 2525
`), 0o644)
	require.NoError(t, err)

	t.Setenv("GLASSCUBE_SESSION_SECRET", "from-env")
	t.Setenv("GLASSCUBE_SMTP_USERNAME", "mailer")
	t.Setenv("GLASSCUBE_API_RATE_LIMIT", "2.5")
	t.Setenv("GLASSCUBE_API_BURST", "3")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "My Site", cfg.Name)
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.FeedTTL)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, "mailer", cfg.SMTP.Username)
	assert.Equal(t, "from-env", cfg.SessionSecret)
	assert.Equal(t, 2.5, cfg.APIRate)
	assert.Equal(t, 3, cfg.APIBurst)
}

func TestAPIOptions(t *testing.T) {
	cfg := SiteConfig{}
	cfg.setDefaults()
	assert.Len(t, cfg.APIOptions(nil), 2, "timeout and rate limit")

	cfg.APIRate = -1
	assert.Len(t, cfg.APIOptions(nil), 1, "negative rate disables the limiter")
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestStartRequiresSessionSecret(t *testing.T) {
	app := New(SiteConfig{})
	_, err := app.Handler()
	assert.ErrorContains(t, err, "SessionSecret")
}
