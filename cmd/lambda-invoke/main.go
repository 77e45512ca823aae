package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	invoker "github.com/shirou/lambda-invoker"
)

var logger *zap.SugaredLogger

func main() {
	config, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "parseConfig error: %s\n", err)
		os.Exit(2)
	}

	logger = NewLogger(config)
	defer logger.Sync()

	var ctx context.Context
	var cancel context.CancelFunc
	if config.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), config.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	defer cancel()

	if err := run(ctx, config, os.Stdout); err != nil {
		logger.Errorw("invoke failed", "function_name", config.funcName, "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

// run invokes the function once and writes the result to w as indented JSON.
func run(ctx context.Context, config *Config, w io.Writer) error {
	client, err := newClient(ctx, config)
	if err != nil {
		return err
	}
	iv := invoker.New(client, invoker.WithLogger(logger.Desugar()))

	started := time.Now()
	result, invokeErr := iv.Invoke(ctx, config.funcName, config.requestPayload())
	logger.Infow("invoked", "function_name", config.funcName, "elapsed", time.Since(started))

	if config.tail {
		if err := tailLogs(ctx, config, started); err != nil {
			logger.Warnw("log tail stopped", "error", err)
		}
	}
	if invokeErr != nil {
		return invokeErr
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode result")
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

var newClient = func(ctx context.Context, config *Config) (invoker.Client, error) {
	switch config.sdk {
	case SDKv2:
		return invoker.LoadV2Client(ctx, config.region)
	default:
		return invoker.NewRegionalClient(invoker.SessionOptions(config.region))
	}
}

func tailLogs(ctx context.Context, config *Config, since time.Time) error {
	fn, err := invoker.ParseFunctionName(config.funcName)
	if err != nil {
		return err
	}
	region := config.region
	if fn.Region != "" {
		region = fn.Region
	}
	sess, err := session.NewSessionWithOptions(invoker.SessionOptions(region))
	if err != nil {
		return errors.Wrapf(err, "aws session error, %s", config.funcName)
	}
	t, err := newLogTailer(cloudwatchlogs.New(sess), fn, since)
	if err != nil {
		return err
	}
	return t.run(ctx)
}
