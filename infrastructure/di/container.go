package di

import (
	"aulaadmin/application/controller"
	"aulaadmin/infrastructure/apiclient"
	"aulaadmin/infrastructure/config"
	"aulaadmin/interfaces/http/rest"
	"aulaadmin/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Client     *apiclient.Client
	Controller *controller.Controller
	Metrics    *observability.Metrics
	Router     *rest.Router
}
