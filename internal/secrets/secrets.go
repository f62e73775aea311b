// Package secrets resolves the MongoDB connection string. Deployments keep the
// real connection URI (with credentials) in AWS Secrets Manager; local setups
// fall back to the MONGODB_URI environment value.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/tarefista/tarefista-backend/internal/config"
)

// mongoSecret is the JSON shape stored in Secrets Manager.
type mongoSecret struct {
	MongoURI string `json:"mongoUri"`
}

// ResolveMongoURI returns the connection URI the store client should use.
// When AWS credentials and a secret id are configured the secret wins;
// otherwise the configured MONGODB_URI is returned as-is.
func ResolveMongoURI(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.MongoSecretID == "" || cfg.AWSAccessKeyID == "" || cfg.AWSSecretKey == "" {
		return cfg.MongoURI, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretKey,
			"",
		)))
	if err != nil {
		return "", fmt.Errorf("loading AWS config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg)

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &cfg.MongoSecretID,
	})
	if err != nil {
		return "", fmt.Errorf("fetching secret %q: %w", cfg.MongoSecretID, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %q has no string value", cfg.MongoSecretID)
	}

	var secret mongoSecret
	if err := json.Unmarshal([]byte(*out.SecretString), &secret); err != nil {
		return "", fmt.Errorf("decoding secret %q: %w", cfg.MongoSecretID, err)
	}
	if secret.MongoURI == "" {
		return "", fmt.Errorf("secret %q is missing mongoUri", cfg.MongoSecretID)
	}

	return secret.MongoURI, nil
}
