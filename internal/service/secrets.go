package service

import (
	"context"
	"fmt"

	vault "github.com/hashicorp/vault/api"
)

type (
	// StaticSecrets is an in-memory Secrets source
	StaticSecrets map[string]string

	// VaultSecrets reads secrets from a HashiCorp Vault KV mount
	VaultSecrets struct {
		client     *vault.Client
		pathPrefix string
	}

	// VaultConfig configures the Vault secret source
	VaultConfig struct {
		Address    string
		Token      string
		PathPrefix string
	}
)

const defaultVaultPrefix = "secret"

func (s StaticSecrets) Secret(_ context.Context, key string) (string, error) {
	value, ok := s[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	}
	return value, nil
}

// NewVaultSecrets creates a Vault-backed secret source
func NewVaultSecrets(config VaultConfig) (*VaultSecrets, error) {
	cfg := vault.DefaultConfig()
	if config.Address != "" {
		cfg.Address = config.Address
	}

	client, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault client: %w", err)
	}
	if config.Token != "" {
		client.SetToken(config.Token)
	}

	prefix := config.PathPrefix
	if prefix == "" {
		prefix = defaultVaultPrefix
	}

	return &VaultSecrets{
		client:     client,
		pathPrefix: prefix,
	}, nil
}

func (v *VaultSecrets) Secret(
	ctx context.Context, key string,
) (string, error) {
	path := fmt.Sprintf("%s/%s", v.pathPrefix, key)
	secret, err := v.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return "", fmt.Errorf("vault read: %w", err)
	}
	if secret == nil {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	}

	if value, ok := secret.Data["value"].(string); ok {
		return value, nil
	}
	for _, val := range secret.Data {
		if str, ok := val.(string); ok {
			return str, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
}
