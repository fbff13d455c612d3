// Package appconfig holds the static branding and feature-flag record shared
// by every screen of the application.
package appconfig

import (
	"errors"
	"fmt"
	"strconv"
)

// AppConfig describes branding and feature toggles.
// Optional fields are nil when unset; a nil value means "use the platform default".
type AppConfig struct {
	CompanyName     string
	PageTitle       string
	PageDescription string

	SupportsChatInput         bool
	SupportsVideoInput        bool
	SupportsScreenShare       bool
	IsPreConnectBufferEnabled bool

	Logo            string
	Accent          *string
	LogoDark        string
	AccentDark      *string
	StartButtonText string

	SandboxID *string
	AgentName *string
}

var defaultConfig = AppConfig{
	CompanyName:     "Murf Wellness",
	PageTitle:       "Daily Wellness Check-in",
	PageDescription: "A supportive voice companion for your daily check-in",

	SupportsChatInput:         true,
	SupportsVideoInput:        false,
	SupportsScreenShare:       false,
	IsPreConnectBufferEnabled: true,

	Logo:            "/wellness-logo.svg",
	Accent:          ptr("#22d3ee"),
	LogoDark:        "/wellness-logo-dark.svg",
	AccentDark:      ptr("#0ea5e9"),
	StartButtonText: "Start check-in",
}

func ptr(s string) *string { return &s }

// Default returns a copy of the application configuration.
func Default() AppConfig {
	cfg := defaultConfig
	cfg.Accent = clone(defaultConfig.Accent)
	cfg.AccentDark = clone(defaultConfig.AccentDark)
	cfg.SandboxID = clone(defaultConfig.SandboxID)
	cfg.AgentName = clone(defaultConfig.AgentName)
	return cfg
}

func clone(p *string) *string {
	if p == nil {
		return nil
	}
	return ptr(*p)
}

// ErrMissingField is returned by Validate for an empty required field.
var ErrMissingField = errors.New("missing required field")

// ErrEmptyOptional is returned by Validate for an optional field set to "".
var ErrEmptyOptional = errors.New("optional field set to empty string")

// Validate checks that every required field is present and that optional
// fields are either absent or non-empty.
func (c AppConfig) Validate() error {
	var errs []error
	required := []struct {
		name  string
		value string
	}{
		{"companyName", c.CompanyName},
		{"pageTitle", c.PageTitle},
		{"pageDescription", c.PageDescription},
		{"logo", c.Logo},
		{"logoDark", c.LogoDark},
		{"startButtonText", c.StartButtonText},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s: %w", r.name, ErrMissingField))
		}
	}
	optional := []struct {
		name  string
		value *string
	}{
		{"accent", c.Accent},
		{"accentDark", c.AccentDark},
		{"sandboxId", c.SandboxID},
		{"agentName", c.AgentName},
	}
	for _, o := range optional {
		if o.value != nil && *o.value == "" {
			errs = append(errs, fmt.Errorf("%s: %w", o.name, ErrEmptyOptional))
		}
	}
	return errors.Join(errs...)
}

// AccentOr returns the accent color, or fallback when the platform default applies.
func (c AppConfig) AccentOr(fallback string) string {
	if c.Accent == nil {
		return fallback
	}
	return *c.Accent
}

// Field is one displayable configuration entry.
type Field struct {
	Name  string
	Value string
	Set   bool
}

// Fields lists every field in declaration order.
func (c AppConfig) Fields() []Field {
	opt := func(name string, p *string) Field {
		if p == nil {
			return Field{Name: name}
		}
		return Field{Name: name, Value: *p, Set: true}
	}
	str := func(name, v string) Field { return Field{Name: name, Value: v, Set: true} }
	flag := func(name string, v bool) Field { return Field{Name: name, Value: strconv.FormatBool(v), Set: true} }

	return []Field{
		str("companyName", c.CompanyName),
		str("pageTitle", c.PageTitle),
		str("pageDescription", c.PageDescription),
		flag("supportsChatInput", c.SupportsChatInput),
		flag("supportsVideoInput", c.SupportsVideoInput),
		flag("supportsScreenShare", c.SupportsScreenShare),
		flag("isPreConnectBufferEnabled", c.IsPreConnectBufferEnabled),
		str("logo", c.Logo),
		opt("accent", c.Accent),
		str("logoDark", c.LogoDark),
		opt("accentDark", c.AccentDark),
		str("startButtonText", c.StartButtonText),
		opt("sandboxId", c.SandboxID),
		opt("agentName", c.AgentName),
	}
}
