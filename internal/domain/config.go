package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gitee.com/flycash/shift-handover/internal/errs"
)

// ConfigType is the declared type tag of a configuration value.
type ConfigType string

const (
	ConfigTypeString ConfigType = "string"
	ConfigTypeInt    ConfigType = "int"
	ConfigTypeFloat  ConfigType = "float"
	ConfigTypeBool   ConfigType = "bool"
	ConfigTypeJSON   ConfigType = "json"
)

func (t ConfigType) IsValid() bool {
	switch t {
	case ConfigTypeString, ConfigTypeInt, ConfigTypeFloat, ConfigTypeBool, ConfigTypeJSON:
		return true
	default:
		return false
	}
}

// Well-known configuration keys.
const (
	ConfigSLACritical      = "sla_critico"
	ConfigSLAHigh          = "sla_alto"
	ConfigSLAMedium        = "sla_medio"
	ConfigSLALow           = "sla_baixo"
	ConfigAlertEnabled     = "alerta_sla"
	ConfigAlertLeadMinutes = "alerta_antecedencia"
	ConfigAlertOnce        = "alerta_unico"
	ConfigAlertOverdue     = "alerta_atraso"
	ConfigNotifications    = "notificacoes_ativas"
	ConfigBackupEnabled    = "backup_automatico"
	ConfigAutoRefresh      = "auto_refresh"
)

// DefaultAlertLeadMinutes applies when alerta_antecedencia is missing or unreadable.
const DefaultAlertLeadMinutes = 30

// ConfigEntry is a typed key-value setting. Value holds the stored text form.
type ConfigEntry struct {
	Key         string
	Value       string
	Type        ConfigType
	Description string
	Utime       time.Time
}

// NewConfigEntry encodes value according to typ.
func NewConfigEntry(key string, value any, typ ConfigType, description string) (ConfigEntry, error) {
	if strings.TrimSpace(key) == "" {
		return ConfigEntry{}, fmt.Errorf("%w: config key is empty", errs.ErrInvalidParameter)
	}
	if !typ.IsValid() {
		return ConfigEntry{}, fmt.Errorf("%w: config type = %q", errs.ErrInvalidParameter, typ)
	}
	raw, err := encodeConfigValue(value, typ)
	if err != nil {
		return ConfigEntry{}, err
	}
	return ConfigEntry{Key: key, Value: raw, Type: typ, Description: description}, nil
}

// Typed coerces Value by the type tag. json values decode into any.
func (c ConfigEntry) Typed() (any, error) {
	switch c.Type {
	case ConfigTypeInt:
		v, err := strconv.ParseInt(strings.TrimSpace(c.Value), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not an int: %w", errs.ErrInvalidParameter, c.Key, err)
		}
		return int(v), nil
	case ConfigTypeFloat:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not a float: %w", errs.ErrInvalidParameter, c.Key, err)
		}
		return v, nil
	case ConfigTypeBool:
		return parseConfigBool(c.Value), nil
	case ConfigTypeJSON:
		var v any
		if err := json.Unmarshal([]byte(c.Value), &v); err != nil {
			return nil, fmt.Errorf("%w: %s is not json: %w", errs.ErrInvalidParameter, c.Key, err)
		}
		return v, nil
	default:
		return c.Value, nil
	}
}

func parseConfigBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on", "sim":
		return true
	default:
		return false
	}
}

func encodeConfigValue(value any, typ ConfigType) (string, error) {
	switch typ {
	case ConfigTypeJSON:
		if s, ok := value.(string); ok && json.Valid([]byte(s)) {
			return s, nil
		}
		b, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err)
		}
		return string(b), nil
	case ConfigTypeBool:
		switch v := value.(type) {
		case bool:
			return strconv.FormatBool(v), nil
		case string:
			return strconv.FormatBool(parseConfigBool(v)), nil
		default:
			return "", fmt.Errorf("%w: %v is not a bool", errs.ErrInvalidParameter, value)
		}
	case ConfigTypeInt:
		switch v := value.(type) {
		case int:
			return strconv.Itoa(v), nil
		case int32:
			return strconv.FormatInt(int64(v), 10), nil
		case int64:
			return strconv.FormatInt(v, 10), nil
		case string:
			if _, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err != nil {
				return "", fmt.Errorf("%w: %q is not an int", errs.ErrInvalidParameter, v)
			}
			return strings.TrimSpace(v), nil
		default:
			return "", fmt.Errorf("%w: %v is not an int", errs.ErrInvalidParameter, value)
		}
	case ConfigTypeFloat:
		switch v := value.(type) {
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case float32:
			return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
		case int:
			return strconv.Itoa(v), nil
		case string:
			if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
				return "", fmt.Errorf("%w: %q is not a float", errs.ErrInvalidParameter, v)
			}
			return strings.TrimSpace(v), nil
		default:
			return "", fmt.Errorf("%w: %v is not a float", errs.ErrInvalidParameter, value)
		}
	default:
		return fmt.Sprint(value), nil
	}
}

// DefaultConfigEntries are written by the seed operation when absent.
func DefaultConfigEntries() []ConfigEntry {
	return []ConfigEntry{
		{Key: ConfigSLACritical, Value: "60", Type: ConfigTypeInt, Description: "SLA for critical tasks (minutes)"},
		{Key: ConfigSLAHigh, Value: "240", Type: ConfigTypeInt, Description: "SLA for high priority tasks (minutes)"},
		{Key: ConfigSLAMedium, Value: "720", Type: ConfigTypeInt, Description: "SLA for medium priority tasks (minutes)"},
		{Key: ConfigSLALow, Value: "2880", Type: ConfigTypeInt, Description: "SLA for low priority tasks (minutes)"},
		{Key: ConfigAlertEnabled, Value: "true", Type: ConfigTypeBool, Description: "Enable SLA alerts"},
		{Key: ConfigAlertLeadMinutes, Value: "30", Type: ConfigTypeInt, Description: "Alert lead time before deadline (minutes)"},
		{Key: ConfigAlertOnce, Value: "false", Type: ConfigTypeBool, Description: "Alert once per threshold crossing instead of every tick"},
		{Key: ConfigAlertOverdue, Value: "false", Type: ConfigTypeBool, Description: "Alert once when a task passes its deadline"},
		{Key: ConfigNotifications, Value: "true", Type: ConfigTypeBool, Description: "Enable outbound notifications"},
		{Key: ConfigBackupEnabled, Value: "true", Type: ConfigTypeBool, Description: "Enable the scheduled backup"},
		{Key: ConfigAutoRefresh, Value: "30", Type: ConfigTypeInt, Description: "Dashboard auto refresh (seconds)"},
	}
}

// SLAConfigKey maps a priority to the key holding its SLA budget.
func SLAConfigKey(p Priority) string {
	switch p {
	case PriorityCritical:
		return ConfigSLACritical
	case PriorityHigh:
		return ConfigSLAHigh
	case PriorityMedium:
		return ConfigSLAMedium
	default:
		return ConfigSLALow
	}
}

// DefaultSLAMinutes is the fallback budget when the key is missing.
func DefaultSLAMinutes(p Priority) int {
	switch p {
	case PriorityCritical:
		return 60
	case PriorityHigh:
		return 240
	case PriorityMedium:
		return 720
	default:
		return 2880
	}
}
