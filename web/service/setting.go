package service

import (
	"slices"
	"strconv"

	"medblog/database"
	"medblog/database/model"
	"medblog/util/common"
	"medblog/util/random"
	"medblog/web/entity"
)

// AllowedThemes enumerates the selectable site themes.
var AllowedThemes = []string{"professional", "personal"}

// siteSettingsId is the fixed identifier of the logical settings
// singleton exposed to the frontend.
const siteSettingsId = 1

var defaultValueMap = map[string]string{
	"theme":           "professional",
	"pageSize":        "6",
	"webListen":       "",
	"webPort":         "8080",
	"webDomain":       "",
	"sessionMaxHours": "72",
	"timeLocation":    "UTC",
	"digestEnable":    "false",
	"digestCron":      "@daily",
}

// SettingService reads and writes the key/value panel settings store.
// Missing keys fall back to defaults, so a fresh database behaves as a
// fully configured one.
type SettingService struct{}

func (s *SettingService) ResetSettings() error {
	db := database.GetDB()
	return db.Where("1 = 1").Delete(model.Setting{}).Error
}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	db := database.GetDB()
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{
			Key:   key,
			Value: value,
		}).Error
	} else if err != nil {
		return err
	}
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in defaultValueMap", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	return s.saveSetting(key, value)
}

func (s *SettingService) getBool(key string) (bool, error) {
	str, err := s.getString(key)
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(str)
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

// GetSecret returns the token signing secret, generating and persisting
// one on first use so tokens stay valid across restarts.
func (s *SettingService) GetSecret() (string, error) {
	setting, err := s.getSetting("secret")
	if database.IsNotFound(err) {
		secret := random.Seq(32)
		if err := s.saveSetting("secret", secret); err != nil {
			return "", err
		}
		return secret, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) SetListen(ip string) error {
	return s.setString("webListen", ip)
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) SetPort(port int) error {
	return s.setString("webPort", strconv.Itoa(port))
}

func (s *SettingService) GetWebDomain() (string, error) {
	return s.getString("webDomain")
}

func (s *SettingService) GetPageSize() (int, error) {
	return s.getInt("pageSize")
}

func (s *SettingService) GetSessionMaxHours() (int, error) {
	return s.getInt("sessionMaxHours")
}

func (s *SettingService) GetTimeLocation() (string, error) {
	return s.getString("timeLocation")
}

func (s *SettingService) GetDigestEnable() (bool, error) {
	return s.getBool("digestEnable")
}

func (s *SettingService) GetDigestCron() (string, error) {
	return s.getString("digestCron")
}

// GetSiteSettings returns the public settings singleton, persisting the
// default theme on first access.
func (s *SettingService) GetSiteSettings() (*entity.SiteSettings, error) {
	_, err := s.getSetting("theme")
	if database.IsNotFound(err) {
		if err := s.saveSetting("theme", defaultValueMap["theme"]); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	theme, err := s.getString("theme")
	if err != nil {
		return nil, err
	}
	return &entity.SiteSettings{Id: siteSettingsId, Theme: theme}, nil
}

// SetTheme updates the site theme. The theme must be one of
// AllowedThemes.
func (s *SettingService) SetTheme(theme string) (*entity.SiteSettings, error) {
	if !slices.Contains(AllowedThemes, theme) {
		return nil, common.NewErrorf("unknown theme %q", theme)
	}
	if err := s.saveSetting("theme", theme); err != nil {
		return nil, err
	}
	return &entity.SiteSettings{Id: siteSettingsId, Theme: theme}, nil
}
