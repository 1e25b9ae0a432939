package config

import (
	"os"
	"testing"

	"github.com/matryer/is"
)

func TestParseEnv(t *testing.T) {
	is := is.New(t)
	td := t.TempDir()
	is.NoErr(os.Setenv("CRAFTPLAN_DATA_PATH", td))
	is.NoErr(os.Setenv("CRAFTPLAN_HTTP_LISTEN_ADDR", ":8080"))
	is.NoErr(os.Setenv("CRAFTPLAN_IDENTITY_ISSUER", "https://id.example.com"))
	is.NoErr(os.Setenv("CRAFTPLAN_HTTP_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com"))
	t.Cleanup(func() {
		is.NoErr(os.Unsetenv("CRAFTPLAN_DATA_PATH"))
		is.NoErr(os.Unsetenv("CRAFTPLAN_HTTP_LISTEN_ADDR"))
		is.NoErr(os.Unsetenv("CRAFTPLAN_IDENTITY_ISSUER"))
		is.NoErr(os.Unsetenv("CRAFTPLAN_HTTP_ALLOWED_ORIGINS"))
	})

	cfg := DefaultConfig()
	is.NoErr(cfg.ParseEnv())
	is.Equal(cfg.DataPath, td)
	is.Equal(cfg.HTTP.ListenAddr, ":8080")
	is.Equal(cfg.Identity.Issuer, "https://id.example.com")
	is.Equal(cfg.HTTP.AllowedOrigins, []string{"https://a.example.com", "https://b.example.com"})
}

func TestWriteAndParseFile(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.Name = "Test Plan"
	is.NoErr(cfg.WriteConfig())
	is.True(cfg.Exist())

	got := DefaultConfig()
	got.DataPath = cfg.DataPath
	is.NoErr(got.ParseFile())
	is.Equal(got.Name, "Test Plan")
}

func TestValidatePublicURLTrailingSlash(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.HTTP.PublicURL = "https://plan.example.com/"
	is.NoErr(cfg.Validate())
	is.Equal(cfg.HTTP.PublicURL, "https://plan.example.com")
}
