package auth

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"habit/config"
	domainerrors "habit/internal/domain/errors"
	"habit/internal/domain/service"
	"habit/internal/errors"
)

// weakPasswords is the built-in blacklist, matched case-insensitively against the whole password.
var weakPasswords = []string{
	"password",
	"password1",
	"password123",
	"password1!",
	"password123!",
	"p@ssw0rd",
	"p@ssword1",
	"p@ssw0rd1",
	"passw0rd!",
	"qwerty123!",
	"qwerty1!",
	"welcome1!",
	"welcome123!",
	"admin123!",
	"letmein1!",
	"changeme1!",
	"iloveyou1!",
	"abc123!@#",
	"12345678",
	"123456789",
	"qwertyuiop",
	"habit123!",
}

type passwordPolicy struct {
	cfg       config.PasswordStrengthConfig
	blacklist map[string]struct{}
}

// NewPasswordPolicy builds the strength policy from configuration.
func NewPasswordPolicy(cfg *config.PasswordStrengthConfig) service.PasswordPolicy {
	return newPasswordPolicy(cfg)
}

func newPasswordPolicy(cfg *config.PasswordStrengthConfig) *passwordPolicy {
	p := &passwordPolicy{
		cfg:       *cfg,
		blacklist: make(map[string]struct{}, len(weakPasswords)+len(cfg.Blacklist)),
	}
	for _, word := range weakPasswords {
		p.blacklist[strings.ToLower(word)] = struct{}{}
	}
	for _, word := range cfg.Blacklist {
		if word = strings.TrimSpace(word); word != "" {
			p.blacklist[strings.ToLower(word)] = struct{}{}
		}
	}

	return p
}

// Validate returns ErrWeakPassword describing the first rule the password breaks.
func (p *passwordPolicy) Validate(password string) error {
	if utf8.RuneCountInString(password) < p.cfg.MinLength {
		return p.violation("password must be at least %d characters long", p.cfg.MinLength)
	}

	// bcrypt ignores input past 72 bytes.
	if p.cfg.MaxLength > 0 && len(password) > p.cfg.MaxLength {
		return p.violation("password must be at most %d bytes long", p.cfg.MaxLength)
	}

	if p.cfg.RequireLowercase && !hasLowercase(password) {
		return p.violation("password must contain at least one lowercase letter")
	}

	if p.cfg.RequireUppercase && !hasUppercase(password) {
		return p.violation("password must contain at least one uppercase letter")
	}

	if p.cfg.RequireNumbers && !hasNumbers(password) {
		return p.violation("password must contain at least one number")
	}

	if p.cfg.RequireSpecial && !hasSpecialChars(password) {
		return p.violation("password must contain at least one special character")
	}

	if p.isBlacklisted(password) {
		return p.violation("password is too common")
	}

	return nil
}

func (p *passwordPolicy) violation(format string, args ...any) error {
	return errors.WithStack(domainerrors.ErrWeakPassword.WithDetails(fmt.Sprintf(format, args...)))
}

func (p *passwordPolicy) isBlacklisted(password string) bool {
	_, ok := p.blacklist[strings.ToLower(password)]

	return ok
}

func hasUppercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func hasLowercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func hasNumbers(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func hasSpecialChars(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}) >= 0
}
