package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath = "."

	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"

	CooldownDriverMemory = "memory"
	CooldownDriverRedis  = "redis"

	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"

	defaultBcryptCost           = 12
	defaultArgon2Memory         = 64 * 1024
	defaultArgon2Iterations     = 3
	defaultArgon2Parallelism    = 2
	defaultArgon2SaltLength     = 16
	defaultArgon2KeyLength      = 32
	defaultHashQueueSize        = 64
	defaultMinPasswordLength    = 8
	defaultMaxPasswordLength    = 72
	defaultNotificationCooldown = 60 * time.Second
	defaultSMTPTimeout          = 10 * time.Second
	defaultSMTPPort             = 587
	defaultRedisPrefix          = "habit:cooldown:"
	defaultNotificationFrom     = "no-reply@habit.local"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	Store StoreConfig `json:"store" yaml:"store"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Redis *RedisConfig `json:"redis" yaml:"redis"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	PasswordStrength *PasswordStrengthConfig `json:"passwordStrength" yaml:"passwordStrength"`

	Notification *NotificationConfig `json:"notification" yaml:"notification"`

	Cooldown CooldownConfig `json:"cooldown" yaml:"cooldown"`
}

// StoreConfig selects the UserStore implementation
type StoreConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	// Timeout bounds a single store call.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// RedisConfig defines the Redis connection used by the cooldown limiter
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
	Prefix   string `json:"prefix" yaml:"prefix"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	// Algorithm is the current hash policy: bcrypt or argon2id.
	Algorithm  string       `json:"algorithm" yaml:"algorithm"`
	BcryptCost int          `json:"bcryptCost" yaml:"bcryptCost"`
	Argon2     Argon2Config `json:"argon2" yaml:"argon2"`
	// HashWorkers is the size of the hashing pool, defaults to runtime.NumCPU().
	HashWorkers   int `json:"hashWorkers" yaml:"hashWorkers"`
	HashQueueSize int `json:"hashQueueSize" yaml:"hashQueueSize"`
	// MaskUnknownUser reports unknown usernames as invalid credentials on login.
	MaskUnknownUser bool `json:"maskUnknownUser" yaml:"maskUnknownUser"`
}

// Argon2Config holds argon2id parameters
type Argon2Config struct {
	Memory      uint32 `json:"memory" yaml:"memory"`
	Iterations  uint32 `json:"iterations" yaml:"iterations"`
	Parallelism uint8  `json:"parallelism" yaml:"parallelism"`
	SaltLength  uint32 `json:"saltLength" yaml:"saltLength"`
	KeyLength   uint32 `json:"keyLength" yaml:"keyLength"`
}

// PasswordStrengthConfig defines password strength requirements
type PasswordStrengthConfig struct {
	MinLength        int  `json:"minLength" yaml:"minLength"`
	RequireUppercase bool `json:"requireUppercase" yaml:"requireUppercase"`
	RequireLowercase bool `json:"requireLowercase" yaml:"requireLowercase"`
	RequireNumbers   bool `json:"requireNumbers" yaml:"requireNumbers"`
	RequireSpecial   bool `json:"requireSpecial" yaml:"requireSpecial"`
	MaxLength        int  `json:"maxLength" yaml:"maxLength"`
	// Blacklist extends the built-in list of weak passwords.
	Blacklist []string `json:"blacklist" yaml:"blacklist"`
}

// NotificationConfig defines outbound email settings
type NotificationConfig struct {
	Cooldown time.Duration `json:"cooldown" yaml:"cooldown"`
	From     string        `json:"from" yaml:"from"`
	SMTP     SMTPConfig    `json:"smtp" yaml:"smtp"`
}

// SMTPConfig defines the SMTP relay. An empty host selects the log notifier.
type SMTPConfig struct {
	Host     string        `json:"host" yaml:"host"`
	Port     int           `json:"port" yaml:"port"`
	Username string        `json:"username" yaml:"username"`
	Password string        `json:"password" yaml:"password"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// CooldownConfig selects the CooldownLimiter implementation
type CooldownConfig struct {
	Driver string `json:"driver" yaml:"driver"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Environment variables override YAML values.
	// Example: AUTH_BCRYPTCOST -> auth.bcryptCost
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if cfg.Store.Driver == StoreDriverPostgres {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills every absent value with its default.
func (c *Config) ApplyDefaults() {
	if c.Store.Driver == "" {
		c.Store.Driver = StoreDriverMemory
	}
	if c.Store.Timeout <= 0 {
		c.Store.Timeout = 5 * time.Second
	}
	if c.Postgres == nil {
		c.Postgres = &postgres.DBConn{}
	}
	if c.Redis == nil {
		c.Redis = &RedisConfig{}
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = defaultRedisPrefix
	}
	if c.Cooldown.Driver == "" {
		c.Cooldown.Driver = CooldownDriverMemory
	}

	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	c.Auth.applyDefaults()

	if c.PasswordStrength == nil {
		c.PasswordStrength = &PasswordStrengthConfig{
			RequireUppercase: true,
			RequireLowercase: true,
			RequireNumbers:   true,
			RequireSpecial:   true,
		}
	}
	if c.PasswordStrength.MinLength <= 0 {
		c.PasswordStrength.MinLength = defaultMinPasswordLength
	}
	if c.PasswordStrength.MaxLength <= 0 {
		c.PasswordStrength.MaxLength = defaultMaxPasswordLength
	}

	if c.Notification == nil {
		c.Notification = &NotificationConfig{}
	}
	if c.Notification.Cooldown <= 0 {
		c.Notification.Cooldown = defaultNotificationCooldown
	}
	if c.Notification.From == "" {
		c.Notification.From = defaultNotificationFrom
	}
	if c.Notification.SMTP.Port == 0 {
		c.Notification.SMTP.Port = defaultSMTPPort
	}
	if c.Notification.SMTP.Timeout <= 0 {
		c.Notification.SMTP.Timeout = defaultSMTPTimeout
	}
}

func (a *AuthConfig) applyDefaults() {
	if a.Algorithm == "" {
		a.Algorithm = AlgorithmBcrypt
	}
	if a.BcryptCost == 0 {
		a.BcryptCost = defaultBcryptCost
	}
	if a.Argon2.Memory == 0 {
		a.Argon2.Memory = defaultArgon2Memory
	}
	if a.Argon2.Iterations == 0 {
		a.Argon2.Iterations = defaultArgon2Iterations
	}
	if a.Argon2.Parallelism == 0 {
		a.Argon2.Parallelism = defaultArgon2Parallelism
	}
	if a.Argon2.SaltLength == 0 {
		a.Argon2.SaltLength = defaultArgon2SaltLength
	}
	if a.Argon2.KeyLength == 0 {
		a.Argon2.KeyLength = defaultArgon2KeyLength
	}
	if a.HashWorkers <= 0 {
		a.HashWorkers = runtime.NumCPU()
	}
	if a.HashQueueSize <= 0 {
		a.HashQueueSize = defaultHashQueueSize
	}
}

// Validate rejects unknown drivers and algorithms.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverPostgres:
	default:
		return errors.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch c.Cooldown.Driver {
	case CooldownDriverMemory:
	case CooldownDriverRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis.addr is required for the redis cooldown driver")
		}
	default:
		return errors.Errorf("unknown cooldown driver %q", c.Cooldown.Driver)
	}

	switch c.Auth.Algorithm {
	case AlgorithmBcrypt, AlgorithmArgon2id:
	default:
		return errors.Errorf("unknown hash algorithm %q", c.Auth.Algorithm)
	}

	if c.PasswordStrength.MinLength > c.PasswordStrength.MaxLength {
		return errors.Errorf("passwordStrength.minLength %d exceeds maxLength %d",
			c.PasswordStrength.MinLength, c.PasswordStrength.MaxLength)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
