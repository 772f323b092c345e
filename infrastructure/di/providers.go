package di

import (
	"context"
	"fmt"
	"net/http"

	"aulaadmin/application/controller"
	"aulaadmin/infrastructure/apiclient"
	"aulaadmin/infrastructure/config"
	"aulaadmin/interfaces/http/rest"
	"aulaadmin/pkg/observability"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideCloudWatchClient creates a CloudWatch client when metrics are
// enabled; nil disables publishing.
func ProvideCloudWatchClient(ctx context.Context, cfg *config.Config) (*awscloudwatch.Client, error) {
	if !cfg.EnableMetrics {
		return nil, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return awscloudwatch.NewFromConfig(awsCfg), nil
}

// ProvideMetrics creates the metrics publisher
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	namespace := fmt.Sprintf("AulaAdmin/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideHTTPClient creates the outbound HTTP client, X-Ray
// instrumented when tracing is enabled in a Lambda environment.
func ProvideHTTPClient(cfg *config.Config) *http.Client {
	if cfg.EnableTracing && cfg.IsLambda {
		return observability.InstrumentedHTTPClient(nil)
	}
	return http.DefaultClient
}

// ProvideAPIClient creates the upstream data access client
func ProvideAPIClient(cfg *config.Config, httpClient *http.Client, logger *zap.Logger) *apiclient.Client {
	return apiclient.NewClient(cfg.BackendBaseURL, httpClient, logger)
}

// ProvideController creates the entity data controller
func ProvideController(client *apiclient.Client, metrics *observability.Metrics, cfg *config.Config, logger *zap.Logger) *controller.Controller {
	return controller.New(client, metrics, logger, cfg.TolerateCursoDelete)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(ctrl *controller.Controller, client *apiclient.Client, cfg *config.Config, logger *zap.Logger) *rest.Router {
	return rest.NewRouter(ctrl, client, logger, cfg.EnableCORS)
}
