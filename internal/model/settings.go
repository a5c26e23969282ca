package model

// Setting is one row of the `application_global_settings` key/value
// table holding owner-editable branding of the platform.  The key set
// is fixed and seeded with the schema; the owner can only change
// values, never add keys.
//
// Fields:
//  Key   – setting name (primary key).
//  Value – current value as text.
type Setting struct {
    Key   string // application_global_settings.key
    Value string // application_global_settings.value
}

// Keys present in the settings table.
const (
    SettingAccentColor     = "accent_color"
    SettingApplicationName = "application_name"
    SettingLogoID          = "logo_id"
)
