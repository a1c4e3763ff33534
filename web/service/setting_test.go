package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSiteSettingsDefault(t *testing.T) {
	setup()
	defer teardown()

	service := SettingService{}

	// First read materializes the default theme
	settings, err := service.GetSiteSettings()
	assert.NoError(t, err)
	assert.Equal(t, 1, settings.Id)
	assert.Equal(t, "professional", settings.Theme)

	stored, err := service.getSetting("theme")
	assert.NoError(t, err)
	assert.Equal(t, "professional", stored.Value)
}

func TestSetTheme(t *testing.T) {
	setup()
	defer teardown()

	service := SettingService{}

	settings, err := service.SetTheme("personal")
	assert.NoError(t, err)
	assert.Equal(t, "personal", settings.Theme)

	settings, err = service.GetSiteSettings()
	assert.NoError(t, err)
	assert.Equal(t, "personal", settings.Theme)

	_, err = service.SetTheme("neon")
	assert.Error(t, err)

	// A rejected theme leaves the stored one untouched
	settings, err = service.GetSiteSettings()
	assert.NoError(t, err)
	assert.Equal(t, "personal", settings.Theme)
}

func TestSettingDefaultsAndOverrides(t *testing.T) {
	setup()
	defer teardown()

	service := SettingService{}

	port, err := service.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 8080, port)

	assert.NoError(t, service.SetPort(9090))
	port, err = service.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 9090, port)

	hours, err := service.GetSessionMaxHours()
	assert.NoError(t, err)
	assert.Equal(t, 72, hours)

	enabled, err := service.GetDigestEnable()
	assert.NoError(t, err)
	assert.False(t, enabled)

	// Reset drops everything back to defaults
	assert.NoError(t, service.ResetSettings())
	port, err = service.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 8080, port)
}

func TestSecretPersists(t *testing.T) {
	setup()
	defer teardown()

	service := SettingService{}

	first, err := service.GetSecret()
	assert.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := service.GetSecret()
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}
