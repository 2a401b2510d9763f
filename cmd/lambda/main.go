// Command lambda serves the client configuration from AWS Lambda behind an
// API Gateway HTTP API.
package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/AmadorHeE/configsvc/internal/clientconfig"
	"github.com/AmadorHeE/configsvc/internal/logging"
	"github.com/AmadorHeE/configsvc/internal/web"
)

type resolver interface {
	Resolve(ctx context.Context) (clientconfig.Payload, error)
}

type function struct {
	config resolver
}

func (f *function) handle(ctx context.Context, _ events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	status := http.StatusOK
	var body any

	payload, err := f.config.Resolve(ctx)
	if err != nil {
		status, body = web.ErrorStatus(err)
	} else {
		body = payload
	}

	encoded, err := web.Encode(body)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(encoded),
	}, nil
}

func main() {
	logger, err := logging.NewBaseLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := clientconfig.Load()
	if err != nil {
		logger.Fatal("load client config", zap.Error(err))
	}

	h, err := clientconfig.NewHandler(cfg, clientconfig.NewZapReporter(logger))
	if err != nil {
		logger.Fatal("build client config handler", zap.Error(err))
	}

	f := &function{config: h}
	lambda.Start(f.handle)
}
