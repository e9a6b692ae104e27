package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load(discardLogger())

	require.NoError(t, err)
	assert.Equal(t, "dashboard-api", cfg.App.Name)
	assert.Equal(t, http.StatusNotFound, cfg.Collections.SalesNotFoundStatus)
	assert.Equal(t, http.StatusBadRequest, cfg.Collections.InventoriesNotFoundStatus)
	assert.Equal(t, 5*time.Minute, cfg.Collections.ListCacheTTL)
	assert.Equal(t, int32(25), cfg.Database.MaxConnections)
	assert.Equal(t, map[string]int{"critical": 6, "default": 3, "low": 1}, cfg.Asynq.Queues)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
	assert.False(t, cfg.SnapshotsEnabled())
	assert.Equal(t, "localhost:6379", cfg.Asynq.RedisAddr)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("INVENTORIES_NOT_FOUND_STATUS", "404")
	t.Setenv("LIST_CACHE_TTL", "90s")
	t.Setenv("DB_MAX_CONNECTIONS", "40")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("AWS_S3_BUCKET", "snapshots")
	t.Setenv("SECURE_HEADERS", "true")

	cfg, err := Load(discardLogger())

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, cfg.Collections.InventoriesNotFoundStatus)
	assert.Equal(t, 90*time.Second, cfg.Collections.ListCacheTTL)
	assert.Equal(t, int32(40), cfg.Database.MaxConnections)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.AllowedOrigins)
	assert.True(t, cfg.SnapshotsEnabled())
	assert.True(t, cfg.Security.SecureHeaders)
}

func TestLoad_RejectsInvalidNotFoundStatus(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("SALES_NOT_FOUND_STATUS", "200")

	_, err := Load(discardLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sales not-found status")
}

// validConfig builds the default configuration without reading the environment
func validConfig() *Config {
	v := viper.New()
	setDefaults(v)
	v.Set("APP_ENV", "test")
	return fromViper(v)
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		validator Validator
		wantErr   string
	}{
		{
			name:      "basic_accepts_defaults",
			mutate:    func(*Config) {},
			validator: &BasicValidator{},
		},
		{
			name:      "basic_requires_database_host",
			mutate:    func(c *Config) { c.Database.Host = "" },
			validator: &BasicValidator{},
			wantErr:   "Database.Host",
		},
		{
			name: "basic_rejects_inverted_pool_bounds",
			mutate: func(c *Config) {
				c.Database.MaxConnections = 1
				c.Database.MinConnections = 2
			},
			validator: &BasicValidator{},
			wantErr:   "max_connections",
		},
		{
			name:      "basic_rejects_server_error_as_not_found",
			mutate:    func(c *Config) { c.Collections.InventoriesNotFoundStatus = 500 },
			validator: &BasicValidator{},
			wantErr:   "inventories not-found status",
		},
		{
			name:      "production_requires_ssl",
			mutate:    func(c *Config) { c.Security.SecureHeaders = true },
			validator: &ProductionValidator{},
			wantErr:   "SSL",
		},
		{
			name: "production_rejects_wildcard_origin",
			mutate: func(c *Config) {
				c.Database.SSLMode = "require"
				c.Security.SecureHeaders = true
			},
			validator: &ProductionValidator{},
			wantErr:   "wildcard",
		},
		{
			name: "production_accepts_hardened_config",
			mutate: func(c *Config) {
				c.Database.SSLMode = "require"
				c.Security.SecureHeaders = true
				c.Security.AllowedOrigins = []string{"https://dashboard.example"}
			},
			validator: &ProductionValidator{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := tt.validator.Validate(cfg)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_ByEnvironment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantErr     bool
	}{
		{name: "development_skips_production_checks", environment: "development"},
		{name: "staging_skips_production_checks", environment: "staging"},
		{name: "production_runs_production_checks", environment: "production", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.environment

			err := cfg.Validate()

			assert.Equal(t, tt.environment == "production", cfg.IsProduction())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBasicValidator_MissingIsSentinel(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = ""

	err := (&BasicValidator{}).Validate(cfg)

	assert.ErrorIs(t, err, ErrMissingRequiredConfig)
}

type stubSecrets map[string]string

func (s stubSecrets) GetSecrets(_ context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, k := range keys {
		if v, ok := s[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func TestApplySecrets(t *testing.T) {
	cfg := validConfig()
	cfg.Redis.Password = "from-env"

	err := ApplySecrets(context.Background(), cfg, stubSecrets{SecretDatabasePassword: "from-vault"})

	require.NoError(t, err)
	assert.Equal(t, "from-vault", cfg.Database.Password)
	assert.Equal(t, "from-env", cfg.Redis.Password)
}

type fakeSecretsClient struct {
	calls  int
	secret *string
	err    error
}

func (f *fakeSecretsClient) GetSecretValue(context.Context, *secretsmanager.GetSecretValueInput, ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.secret}, nil
}

func TestAWSSecretsManager_GetSecrets(t *testing.T) {
	t.Run("fetches_once_within_ttl", func(t *testing.T) {
		client := &fakeSecretsClient{secret: aws.String(`{"DB_PASSWORD":"s3cret","OTHER":"x"}`)}
		sm := newAWSSecretsManager(client, "dashboard/prod", discardLogger())

		first, err := sm.GetSecrets(context.Background(), []string{SecretDatabasePassword})
		require.NoError(t, err)
		second, err := sm.GetSecrets(context.Background(), []string{SecretDatabasePassword, SecretRedisPassword})
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"DB_PASSWORD": "s3cret"}, first)
		assert.Equal(t, map[string]string{"DB_PASSWORD": "s3cret"}, second)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("propagates_client_error", func(t *testing.T) {
		client := &fakeSecretsClient{err: errors.New("access denied")}
		sm := newAWSSecretsManager(client, "dashboard/prod", discardLogger())

		_, err := sm.GetSecrets(context.Background(), []string{SecretDatabasePassword})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	})

	t.Run("rejects_non_json_secret", func(t *testing.T) {
		client := &fakeSecretsClient{secret: aws.String("plain")}
		sm := newAWSSecretsManager(client, "dashboard/prod", discardLogger())

		_, err := sm.GetSecrets(context.Background(), []string{SecretDatabasePassword})

		assert.Error(t, err)
	})
}
