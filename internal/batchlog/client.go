package batchlog

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Session bundles the loaded AWS configuration for a profile/region pair so
// the logs, metrics, and STS clients all share one set of credentials.
type Session struct {
	cfg     aws.Config
	profile string
}

// NewSession loads AWS configuration with an optional profile and region.
func NewSession(profile, region string) (*Session, error) {
	var opts []func(*config.LoadOptions) error

	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Session{cfg: cfg, profile: profile}, nil
}

// Logs returns a CloudWatch Logs client for this session.
func (s *Session) Logs() *cloudwatchlogs.Client {
	return cloudwatchlogs.NewFromConfig(s.cfg)
}

// Metrics returns a CloudWatch (metrics) client for this session.
func (s *Session) Metrics() *cloudwatch.Client {
	return cloudwatch.NewFromConfig(s.cfg)
}

// Profile returns the shared-config profile the session was loaded with,
// which may be empty when the default credential chain was used.
func (s *Session) Profile() string {
	return s.profile
}

// Region returns the region the session resolved to.
func (s *Session) Region() string {
	return s.cfg.Region
}

// AccountID returns the AWS account ID for the session's credentials using
// STS GetCallerIdentity.
func (s *Session) AccountID(ctx context.Context) (string, error) {
	result, err := sts.NewFromConfig(s.cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %w", err)
	}

	if result.Account == nil {
		return "", fmt.Errorf("account ID not returned")
	}

	return *result.Account, nil
}
