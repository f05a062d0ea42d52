package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
)

type ECSRepository struct {
	client *ecs.Client
}

func NewECSRepository(ctx context.Context) (*ECSRepository, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}
	return &ECSRepository{client: ecs.NewFromConfig(cfg)}, nil
}

// RestartService forces a new deployment of the service, which replaces
// all running tasks with fresh ones. The returned outcome is recorded
// verbatim on the incident timeline.
func (r *ECSRepository) RestartService(ctx context.Context, serviceName, clusterName string) (string, error) {
	out, err := r.client.UpdateService(ctx, &ecs.UpdateServiceInput{
		Service:            aws.String(serviceName),
		Cluster:            aws.String(clusterName),
		ForceNewDeployment: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to restart service %s in %s: %w", serviceName, clusterName, err)
	}

	status := "unknown"
	if out.Service != nil && out.Service.Status != nil {
		status = *out.Service.Status
	}
	return fmt.Sprintf("force new deployment triggered for %s in %s (service status: %s)",
		serviceName, clusterName, status), nil
}
